// Package gemini implements profile analysis with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/profilescan"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for analysis.
const DefaultModel = "gemini-2.5-flash"

// maxPromptRawContent is the raw content budget of a prompt, in characters.
const maxPromptRawContent = 3000

// defaultSEOScore is used when the model omits a numeric score.
const defaultSEOScore = 7.0

// Ensure Analyzer implements profilescan.Analyzer at compile time.
var _ profilescan.Analyzer = (*Analyzer)(nil)

// Analyzer implements profilescan.Analyzer using Google Gemini.
type Analyzer struct {
	client          *genai.Client
	model           string
	tokens          profilescan.TokenCounter
	maxPromptTokens int
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) AnalyzerOption {
	return func(a *Analyzer) {
		a.model = model
	}
}

// WithTokenBudget caps prompts at limit tokens as counted by counter. Raw
// content is shortened until the prompt fits.
func WithTokenBudget(counter profilescan.TokenCounter, limit int) AnalyzerOption {
	return func(a *Analyzer) {
		a.tokens = counter
		a.maxPromptTokens = limit
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze asks Gemini for SEO feedback on profile. Responses that do not
// decode into a complete analysis are EINTERNAL; no fallback analysis is
// ever produced.
func (a *Analyzer) Analyze(ctx context.Context, profile *profilescan.ScrapedProfile) (*profilescan.ProfileAnalysis, error) {
	if profile == nil {
		return nil, profilescan.Errorf(profilescan.EINVALID, "profile required")
	}
	if !profile.Platform.Valid() {
		return nil, profilescan.Errorf(profilescan.EUNSUPPORTED, "cannot analyze %q profile", profile.Platform)
	}

	prompt, err := a.Prompt(ctx, profile)
	if err != nil {
		return nil, err
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, profilescan.WrapError(profilescan.EINTERNAL, err, "gemini request failed")
	}
	if result == nil {
		return nil, profilescan.Errorf(profilescan.EINTERNAL, "gemini returned nil result")
	}

	analysis, err := ParseAnalysis(result.Text(), profile.Platform)
	if err != nil {
		return nil, err
	}
	analysis.OriginalData = profile
	return analysis, nil
}

// Prompt builds the user prompt for profile, shortening raw content until
// the prompt fits the token budget, if one is configured.
// Returns EINVALID if even a prompt without raw content is over budget.
func (a *Analyzer) Prompt(ctx context.Context, profile *profilescan.ScrapedProfile) (string, error) {
	limit := maxPromptRawContent
	for {
		prompt := buildPrompt(profile, limit)
		if a.tokens == nil || a.maxPromptTokens <= 0 {
			return prompt, nil
		}

		n, err := a.tokens.CountTokens(ctx, prompt)
		if err != nil {
			return "", err
		}
		if n <= a.maxPromptTokens {
			return prompt, nil
		}
		if limit == 0 {
			return "", profilescan.Errorf(profilescan.EINVALID, "prompt is %d tokens, max %d", n, a.maxPromptTokens)
		}
		if limit /= 2; limit < 100 {
			limit = 0
		}
	}
}

// BuildConfig returns the GenerateContentConfig for analysis calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an SEO consultant for freelance marketplace profiles. Base every suggestion on the profile data provided and answer with a single JSON object.",
			}},
		},
		Temperature:      &temp,
		MaxOutputTokens:  2000,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the analysis prompt with the full raw content budget.
func BuildUserPrompt(profile *profilescan.ScrapedProfile) string {
	return buildPrompt(profile, maxPromptRawContent)
}

func buildPrompt(profile *profilescan.ScrapedProfile, rawLimit int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PLATFORM: %s\n\n", strings.ToUpper(string(profile.Platform)))
	sb.WriteString("SCRAPED PROFILE DATA:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", profile.Title)
	fmt.Fprintf(&sb, "- Description: %s\n", profile.Description)
	fmt.Fprintf(&sb, "- Tags: %s\n", strings.Join(profile.Tags, ", "))
	fmt.Fprintf(&sb, "- Pricing: %s\n", profile.Pricing)
	fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&sb, "- Experience: %s\n", profile.Experience)
	fmt.Fprintf(&sb, "- Rating: %s\n", profile.Rating)
	fmt.Fprintf(&sb, "- Reviews: %s\n", profile.Reviews)
	fmt.Fprintf(&sb, "- Raw Content: %s\n\n", truncate(profile.RawContent, rawLimit))
	sb.WriteString("Analyze this profile and provide SEO optimization suggestions.\n\n")
	sb.WriteString("Return this JSON format:\n")
	fmt.Fprintf(&sb, `{
  "platform": %q,
  "overallAssessment": "Brief assessment based on actual profile content",
  "seoScore": 7,
  "improvements": ["Specific issue 1", "Specific issue 2", "Specific issue 3", "Quick win"],
  "optimizedTitle": "SEO-optimized title based on their actual title",
  "optimizedDescription": "SEO-optimized description based on their actual content",
  "optimizedTags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "optimizedPricing": "Pricing suggestion based on their current pricing",
  "optimizedQA": ["Q&A 1", "Q&A 2", "Q&A 3"]
}
`, profile.Platform)
	sb.WriteString("\nFocus on improving what is actually there, not generic advice.")
	return sb.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// response is the wire shape of a model answer. Pointer and interface
// fields distinguish missing values from zero values.
type response struct {
	OverallAssessment    string    `json:"overallAssessment"`
	SEOScore             any       `json:"seoScore"`
	Improvements         *[]string `json:"improvements"`
	OptimizedTitle       string    `json:"optimizedTitle"`
	OptimizedDescription string    `json:"optimizedDescription"`
	OptimizedTags        []string  `json:"optimizedTags"`
	OptimizedPricing     string    `json:"optimizedPricing"`
	OptimizedQA          []string  `json:"optimizedQA"`
}

// ParseAnalysis decodes a model answer. Markdown code fences are stripped;
// overallAssessment and improvements are required; a numeric seoScore is
// clamped to 1..10 and defaults to 7 otherwise. The platform always comes
// from the analyzed profile, not the model.
func ParseAnalysis(text string, platform profilescan.Platform) (*profilescan.ProfileAnalysis, error) {
	var r response
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &r); err != nil {
		return nil, profilescan.WrapError(profilescan.EINTERNAL, err, "gemini returned malformed analysis")
	}
	if strings.TrimSpace(r.OverallAssessment) == "" || r.Improvements == nil {
		return nil, profilescan.Errorf(profilescan.EINTERNAL, "gemini analysis missing overallAssessment or improvements")
	}

	score := defaultSEOScore
	if v, ok := r.SEOScore.(float64); ok {
		score = min(max(v, 1), 10)
	}

	analysis := &profilescan.ProfileAnalysis{
		Platform:             platform,
		OverallAssessment:    r.OverallAssessment,
		SEOScore:             score,
		Improvements:         *r.Improvements,
		OptimizedTitle:       r.OptimizedTitle,
		OptimizedDescription: r.OptimizedDescription,
		OptimizedTags:        r.OptimizedTags,
		OptimizedPricing:     r.OptimizedPricing,
		OptimizedQA:          r.OptimizedQA,
	}
	if analysis.OptimizedTags == nil {
		analysis.OptimizedTags = []string{}
	}
	if analysis.OptimizedQA == nil {
		analysis.OptimizedQA = []string{}
	}
	return analysis, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
