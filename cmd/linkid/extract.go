package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/linkid"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	platform, err := linkid.ParsePlatform(c.Platform)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkid.ErrorMessage(err))
		return err
	}
	category, err := linkid.ParseCategory(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkid.ErrorMessage(err))
		return err
	}
	text, err := readText(c.Text, deps.Stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	result, err := deps.Extractor.Extract(deps.Ctx, linkid.Request{
		Text:     text,
		Category: category,
		Platform: platform,
		Proxy:    deps.Proxy,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkid.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return writeJSON(deps.Stdout, newResultOutput(result))
	}
	writeResult(deps, result)
	return nil
}

// writeResult prints one id per line. Mix results are prefixed with the
// tri-state flag and carry titles after a tab. Raw results print the text.
func writeResult(deps *Dependencies, result *linkid.Result) {
	switch {
	case result.Category == linkid.CategoryRaw:
		fmt.Fprintln(deps.Stdout, result.Text)
	case result.Mix != nil:
		fmt.Fprintf(deps.Stdout, "mix: %s\n", result.Mix.Flag)
		for i, id := range result.Mix.IDs {
			if i < len(result.Mix.Titles) && result.Mix.Titles[i] != "" {
				fmt.Fprintf(deps.Stdout, "%s\t%s\n", id, result.Mix.Titles[i])
				continue
			}
			fmt.Fprintln(deps.Stdout, id)
		}
	default:
		if len(result.IDs) > 0 {
			fmt.Fprintln(deps.Stdout, strings.Join(result.IDs, "\n"))
		}
	}
	if len(result.IDs) == 0 && result.Category != linkid.CategoryRaw {
		fmt.Fprintln(deps.Stderr, "No ids found.")
	}
}
