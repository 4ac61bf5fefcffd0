package goquery

import "github.com/fwojciec/profilescan"

// NewFiverrStrategy returns the extraction rules for Fiverr gig and seller pages.
func NewFiverrStrategy() *Strategy {
	return &Strategy{
		Platform: profilescan.PlatformFiverr,
		Title: Field{
			Text(`h1[data-testid="gig-title"]`),
			Text("h1.text-display-5"),
			Text(".gig-title"),
			Attr(`meta[property="og:title"]`, "content"),
		},
		Description: Field{
			Text(`div[data-testid="gig-description"]`),
			Text(".gig-description"),
			Text(".description-container"),
			Attr(`meta[property="og:description"]`, "content"),
			Attr(`meta[name="description"]`, "content"),
		},
		Pricing: Field{
			Text(".price"),
			Text(".package-price"),
			Text(`[data-testid*="price"]`),
		},
		Rating: Field{
			Text(".rating-score"),
			Text(".average-rating"),
			Text(".rating"),
		},
		Reviews: Field{
			Text(".review-count"),
			Text(".rating-count"),
		},
		Tags: ListField{
			Selectors: []string{"a.tag", ".tags-container a", ".skill-tag", ".tag-item"},
			Max:       profilescan.MaxTags,
		},
		Skills: ListField{
			Selectors: []string{`[data-testid="seller-skills"] li`, ".seller-skills li", ".skills-section a"},
			Max:       10,
		},
		Placeholders: DefaultPlaceholders(),
	}
}
