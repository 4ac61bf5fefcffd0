package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/profilescan"
)

// Run executes the text command.
func (c *TextCmd) Run(deps *Dependencies) error {
	profile, err := profileFromText(deps, c.Platform, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, profile)
}

func profileFromText(deps *Dependencies, platform, file string) (*profilescan.ScrapedProfile, error) {
	p, err := profilescan.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	text, err := readInput(deps.Stdin, file)
	if err != nil {
		return nil, err
	}
	return profilescan.BuildProfileFromText(p, text)
}

// readInput reads file, or r when file is "-".
func readInput(r io.Reader, file string) (string, error) {
	var b []byte
	var err error
	if file == "-" || file == "" {
		b, err = io.ReadAll(r)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return "", profilescan.WrapError(profilescan.EINVALID, err, "cannot read profile text from %s", file)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
