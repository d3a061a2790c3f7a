package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/linkid"
)

type resultOutput struct {
	Platform string          `json:"platform"`
	Category string          `json:"category"`
	IDs      []string        `json:"ids"`
	Mix      *mixOutput      `json:"mix,omitempty"`
	Text     *string         `json:"text,omitempty"`
	Failures []failureOutput `json:"failures,omitempty"`
}

type mixOutput struct {
	// Mix is true for collections, false for items and null when neither
	// was found.
	Mix    *bool    `json:"mix"`
	IDs    []string `json:"ids"`
	Titles []string `json:"titles,omitempty"`
}

type failureOutput struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

type mixDecisionOutput struct {
	Mix *bool  `json:"mix"`
	ID  string `json:"id,omitempty"`
}

type detectOutput struct {
	Platform string `json:"platform"`
}

func newResultOutput(r *linkid.Result) resultOutput {
	out := resultOutput{
		Platform: string(r.Platform),
		Category: string(r.Category),
		IDs:      r.IDs,
	}
	if out.IDs == nil {
		out.IDs = []string{}
	}
	if r.Mix != nil {
		out.Mix = &mixOutput{
			Mix:    flagValue(r.Mix.Flag),
			IDs:    r.Mix.IDs,
			Titles: r.Mix.Titles,
		}
		if out.Mix.IDs == nil {
			out.Mix.IDs = []string{}
		}
	}
	if r.Category == linkid.CategoryRaw {
		out.Text = &r.Text
	}
	for _, f := range r.Failures {
		fo := failureOutput{URL: f.URL, Reason: string(f.Reason())}
		if f.Err != nil {
			fo.Error = linkid.ErrorMessage(f.Err)
		}
		out.Failures = append(out.Failures, fo)
	}
	return out
}

// flagValue renders the tri-state as a nullable boolean.
func flagValue(f linkid.MixFlag) *bool {
	container, ok := f.Container()
	if !ok {
		return nil
	}
	return &container
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
