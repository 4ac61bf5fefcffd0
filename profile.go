package profilescan

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Size limits of a ScrapedProfile.
const (
	// MaxTags is the maximum number of tags kept per profile.
	MaxTags = 10

	// MaxRawContent is the byte budget of the sanitized page text forwarded
	// to the analysis collaborator.
	MaxRawContent = 4000
)

// ScrapedProfile is the normalized record extracted from a profile page.
// Scalar fields may be empty but are never absent; Tags and Skills are
// never nil. A ScrapedProfile is built once per successful scrape and is
// not modified afterward.
type ScrapedProfile struct {
	Platform    Platform `json:"platform"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Pricing     string   `json:"pricing"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	Rating      string   `json:"rating"`
	Reviews     string   `json:"reviews"`
	RawContent  string   `json:"rawContent"`
}

// Validate returns an error if the profile violates its size or shape invariants.
func (p *ScrapedProfile) Validate() error {
	if !p.Platform.Valid() {
		return Errorf(EINVALID, "profile platform %q not supported", p.Platform)
	}
	if p.Tags == nil || p.Skills == nil {
		return Errorf(EINVALID, "profile tags and skills must not be nil")
	}
	if len(p.Tags) > MaxTags {
		return Errorf(EINVALID, "profile has %d tags, max %d", len(p.Tags), MaxTags)
	}
	if len(p.RawContent) > MaxRawContent {
		return Errorf(EINVALID, "profile raw content is %d bytes, max %d", len(p.RawContent), MaxRawContent)
	}
	if !utf8.ValidString(p.RawContent) {
		return Errorf(EINVALID, "profile raw content is not valid UTF-8")
	}
	return nil
}

// Fingerprint returns a stable hash of the profile's canonical JSON encoding.
// Two profiles extracted from the same rendered HTML share a fingerprint.
func (p *ScrapedProfile) Fingerprint() string {
	// Encoding a struct of strings and string slices cannot fail.
	b, _ := json.Marshal(p)
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}

// ProfileAnalysis is the feedback produced by the downstream analysis
// collaborator for a scraped profile.
type ProfileAnalysis struct {
	Platform             Platform        `json:"platform"`
	OverallAssessment    string          `json:"overallAssessment"`
	SEOScore             float64         `json:"seoScore"`
	Improvements         []string        `json:"improvements"`
	OptimizedTitle       string          `json:"optimizedTitle"`
	OptimizedDescription string          `json:"optimizedDescription"`
	OptimizedTags        []string        `json:"optimizedTags"`
	OptimizedPricing     string          `json:"optimizedPricing"`
	OptimizedQA          []string        `json:"optimizedQA"`
	OriginalData         *ScrapedProfile `json:"originalData,omitempty"`
}
