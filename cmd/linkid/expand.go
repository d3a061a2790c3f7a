package main

import (
	"fmt"

	"github.com/fwojciec/linkid"
)

// Run executes the expand command.
func (c *ExpandCmd) Run(deps *Dependencies) error {
	text, err := readText(c.Text, deps.Stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	result, err := deps.Extractor.Extract(deps.Ctx, linkid.Request{
		Text:     text,
		Category: linkid.CategoryRaw,
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
