package main

import (
	"fmt"

	"github.com/fwojciec/linkid/extract"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	text, err := readText(c.Text, deps.Stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	platform, ok := extract.DetectPlatform(deps.Profiles, text)
	name := string(platform)
	if !ok {
		name = "unknown"
	}

	if deps.JSON {
		return writeJSON(deps.Stdout, detectOutput{Platform: name})
	}
	fmt.Fprintln(deps.Stdout, name)
	return nil
}
