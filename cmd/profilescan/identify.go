package main

import (
	"fmt"

	"github.com/fwojciec/profilescan"
)

// Run executes the identify command.
func (c *IdentifyCmd) Run(deps *Dependencies) error {
	platform, err := profilescan.IdentifyPlatform(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\t%s\n", platform, platform.Domain())
	return nil
}
