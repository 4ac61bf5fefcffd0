package profilescan

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// allowedPunctuation lists the non-alphanumeric characters kept by CleanText.
const allowedPunctuation = `.,!?@#$%&*()-+=:;/\_`

// CleanText strips characters outside letters, digits, whitespace and a
// small punctuation set, collapses whitespace runs to single spaces, trims,
// and truncates the result to MaxRawContent bytes on a rune boundary.
func CleanText(s string) string {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case strings.ContainsRune(allowedPunctuation, r):
			return r
		}
		return -1
	}, s)
	collapsed := strings.Join(strings.Fields(stripped), " ")
	return truncateBytes(collapsed, MaxRawContent)
}

// truncateBytes shortens s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Placeholders used by the offline text path.
const (
	TextTitlePlaceholder       = "No title available"
	TextDescriptionPlaceholder = "No description available"
	TextPricingPlaceholder     = "Not specified"
)

// Limits of the offline text heuristics.
const (
	textTitleMaxRunes       = 100
	textDescriptionMaxRunes = 200
	textMaxKeywords         = 5
)

// Keyword vocabularies matched against profile text.
var (
	textTagVocabulary = []string{
		"web", "design", "development", "seo", "marketing",
		"graphic", "video", "writing", "translation",
	}
	textSkillVocabulary = []string{
		"javascript", "react", "node", "python", "html",
		"css", "php", "wordpress",
	}
)

var priceRe = regexp.MustCompile(`\$(\d+)`)

// BuildProfileFromText builds a profile from raw profile text without any
// browser involvement. The first line becomes the title, the next two lines
// the description; tags and skills come from fixed keyword vocabularies and
// pricing from the first dollar amount in the text.
//
// Returns EUNSUPPORTED for unknown platforms and EINVALID for empty text.
func BuildProfileFromText(platform Platform, text string) (*ScrapedProfile, error) {
	if !platform.Valid() {
		return nil, Errorf(EUNSUPPORTED, "unsupported platform %q", platform)
	}
	if strings.TrimSpace(text) == "" {
		return nil, Errorf(EINVALID, "profile text required")
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	title := truncateRunes(strings.TrimSpace(lines[0]), textTitleMaxRunes)
	if title == "" {
		title = TextTitlePlaceholder
	}

	var descLines []string
	for _, line := range lines[1:min(len(lines), 3)] {
		if line = strings.TrimSpace(line); line != "" {
			descLines = append(descLines, line)
		}
	}
	description := truncateRunes(strings.Join(descLines, " "), textDescriptionMaxRunes)
	if description == "" {
		description = TextDescriptionPlaceholder
	}

	pricing := TextPricingPlaceholder
	if m := priceRe.FindStringSubmatch(text); m != nil {
		pricing = "$" + m[1]
	}

	lower := strings.ToLower(text)
	return &ScrapedProfile{
		Platform:    platform,
		Title:       title,
		Description: description,
		Tags:        matchVocabulary(lower, textTagVocabulary),
		Pricing:     pricing,
		Skills:      matchVocabulary(lower, textSkillVocabulary),
		RawContent:  CleanText(text),
	}, nil
}

// matchVocabulary returns the vocabulary words contained in text, in
// vocabulary order, capped at textMaxKeywords.
func matchVocabulary(text string, vocabulary []string) []string {
	matches := []string{}
	for _, word := range vocabulary {
		if len(matches) == textMaxKeywords {
			break
		}
		if strings.Contains(text, word) {
			matches = append(matches, word)
		}
	}
	return matches
}
