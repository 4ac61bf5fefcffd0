package goquery

import "github.com/fwojciec/profilescan"

// NewLinkedInStrategy returns the extraction rules for LinkedIn public profiles.
//
// LinkedIn has no pricing, rating or review concepts. The title chain has no
// OpenGraph fallback because the login wall carries its own og:title.
func NewLinkedInStrategy() *Strategy {
	return &Strategy{
		Platform: profilescan.PlatformLinkedIn,
		Title: Field{
			Text("h1.top-card-layout__title"),
			Text(".profile-topcard-headline"),
			Text("h1.text-heading-xlarge"),
		},
		Description: Field{
			Text(".core-section-container__content .description"),
			Text(".summary .description"),
			Text(".about-section"),
		},
		Experience: Field{
			Text(".experience-section"),
			Text(".pv-experience-section"),
		},
		Tags: ListField{
			Selectors: []string{".skill-category-entity__name", ".pv-skill-category-entity__name-text"},
			Max:       profilescan.MaxTags,
		},
		Skills: ListField{
			Selectors: []string{".pv-skill-entity__skill-name", ".skill-pill"},
			Max:       10,
		},
		Placeholders: DefaultPlaceholders(),
		AuthWall: []string{
			".authwall",
			"form.join-form",
			`input[name="session_key"]`,
			`link[rel="canonical"][href*="/authwall"]`,
		},
		AuthWallPaths: []string{"/authwall", "/login", "/checkpoint"},
	}
}
