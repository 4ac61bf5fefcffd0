package goquery

import "github.com/fwojciec/profilescan"

// NewUpworkStrategy returns the extraction rules for Upwork freelancer profiles.
// Upwork does not expose a review count on public profiles.
func NewUpworkStrategy() *Strategy {
	placeholders := DefaultPlaceholders()
	placeholders.Pricing = "Hourly rate not listed"

	return &Strategy{
		Platform: profilescan.PlatformUpwork,
		Title: Field{
			Text(`h1[data-qa="freelancer_name"]`),
			Text("h1.air3-title"),
			Text(".freelancer-title"),
			Attr(`meta[property="og:title"]`, "content"),
		},
		Description: Field{
			Text(`div[data-qa="freelancer_bio"]`),
			Text(".overview-description"),
			Text(".bio"),
			Attr(`meta[property="og:description"]`, "content"),
		},
		Pricing: Field{
			Text(".hourly-rate"),
			Text(".rate"),
			Text(".air3-text-emphasis"),
		},
		Experience: Field{
			Text(".employment-history"),
			Text(".experience-item"),
		},
		Rating: Field{
			Text(".star-rating"),
			Text(".up-rating"),
		},
		Tags: ListField{
			Selectors: []string{".air3-token", ".skill-tag", ".o-tag-skill"},
			Max:       profilescan.MaxTags,
		},
		Skills: ListField{
			Selectors: []string{".up-skill-badge", ".skill-item"},
			Max:       15,
		},
		Placeholders: placeholders,
		AuthWall:     []string{"#login_username", `form[name="login"]`},
		AuthWallPaths: []string{
			"/ab/account-security/login",
		},
	}
}
