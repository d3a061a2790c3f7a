package linkid

import "context"

// Request describes one extraction call.
type Request struct {
	Text     string
	Category Category

	// Platform selects the profile. PlatformAuto detects it from the text.
	Platform Platform

	// Proxy is passed to every outbound request. Empty means direct.
	Proxy string
}

// Result holds the identifiers recovered by one extraction call.
type Result struct {
	Platform Platform
	Category Category

	// IDs holds identifiers in declared group order, direct matches before
	// resolved ones. Duplicates are preserved.
	IDs []string

	// Mix is set for CategoryMix only.
	Mix *MixResult

	// Text is set for CategoryRaw only.
	Text string

	// Failures lists short links and pages that could not be fetched.
	Failures []Outcome
}

// Extractor recovers identifiers from free text.
type Extractor interface {
	// Extract runs one extraction. Network failures never fail the call;
	// they are reported in Result.Failures. An unsupported category or
	// platform returns EINVALID.
	Extract(ctx context.Context, req Request) (*Result, error)
}
