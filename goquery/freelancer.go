package goquery

import "github.com/fwojciec/profilescan"

// NewFreelancerStrategy returns the extraction rules for Freelancer.com profiles.
func NewFreelancerStrategy() *Strategy {
	placeholders := DefaultPlaceholders()
	placeholders.Pricing = "Hourly rate not listed"

	return &Strategy{
		Platform: profilescan.PlatformFreelancer,
		Title: Field{
			Text("h1.owner-name"),
			Text(".profile-username"),
			Text("h1.ProfileWidget__userName"),
			Attr(`meta[property="og:title"]`, "content"),
		},
		Description: Field{
			Text(".profile-description"),
			Text(".user-bio"),
			Text(".ProfileWidget__description"),
		},
		Pricing: Field{
			Text(".hourly-rate"),
			Text(".rate-display"),
			Text(".ProfileWidget__hourlyRate"),
		},
		Rating: Field{
			Text(".rating-score"),
			Text(".user-rating"),
			Text(".ProfileWidget__rating"),
		},
		Reviews: Field{
			Text(".review-count"),
			Text(".ProfileWidget__reviewCount"),
		},
		Tags: ListField{
			Selectors: []string{".skill-tag", ".tag-item", ".ProfileWidget__skill"},
			Max:       profilescan.MaxTags,
		},
		Skills: ListField{
			Selectors: []string{".skill-item", ".expertise-tag"},
			Max:       12,
		},
		Placeholders: placeholders,
	}
}
