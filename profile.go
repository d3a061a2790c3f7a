package linkid

// Candidate is a substring of the input matched by one matcher.
type Candidate struct {
	Group Group

	// Match is the full text matched by the pattern.
	Match string

	// Value is the captured identifier, or a page URL when Mine is set.
	Value string

	// Title is the decoded human-readable slug, when the pattern has one.
	Title string

	// Mine is the token to mine from the body fetched at Value.
	// TokenNone means Value already is the identifier.
	Mine Token
}

// Miner mines embedded identifiers from fetched HTML/JS bodies.
type Miner interface {
	// Mine returns the first identifier for token found in body,
	// or the empty string.
	Mine(token Token, body string) string
}

// Profile is an immutable table of matchers for one platform.
// Implementations must be safe for concurrent use.
type Profile interface {
	Miner

	// Platform returns the platform this profile recognizes.
	Platform() Platform

	// Hosts returns the registrable domains owned by the platform.
	Hosts() []string

	// Match applies the group's matchers in declaration order and returns
	// the non-empty captures in the order they occur in text.
	Match(group Group, text string) []Candidate

	// Groups returns the groups consulted for category, in declared order.
	Groups(category Category) []Group

	// ResolvedGroups returns the groups consulted on a resolved short-link
	// URL, in declared order.
	ResolvedGroups(category Category) []Group

	// FallbackGroups returns groups consulted on resolved text only when
	// Groups(category) produced nothing.
	FallbackGroups(category Category) []Group

	// MixItemGroups returns groups whose ids name items that imply a
	// parent collection. Empty when the platform has no such notion.
	MixItemGroups() []Group
}
