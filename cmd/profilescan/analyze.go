package main

import (
	"fmt"

	"github.com/fwojciec/profilescan"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	profile, err := deps.Scraper.ScrapeProfile(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}
	return analyze(deps, profile)
}

// Run executes the analyze-text command.
func (c *AnalyzeTextCmd) Run(deps *Dependencies) error {
	profile, err := profileFromText(deps, c.Platform, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}
	return analyze(deps, profile)
}

func analyze(deps *Dependencies, profile *profilescan.ScrapedProfile) error {
	analysis, err := deps.Analyzer.Analyze(deps.Ctx, profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, analysis)
}
