package main

import (
	"fmt"

	"github.com/fwojciec/linkid"
)

// Run executes the mix command.
func (c *MixCmd) Run(deps *Dependencies) error {
	flag, id := linkid.DiscriminateMix(c.MixID, c.DetailID)

	if deps.JSON {
		return writeJSON(deps.Stdout, mixDecisionOutput{Mix: flagValue(flag), ID: id})
	}
	if flag == linkid.MixNone {
		fmt.Fprintln(deps.Stdout, "mix: null")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "mix: %s\n%s\n", flag, id)
	return nil
}
