// Package regexp2 provides the platform profiles: immutable tables of
// compiled matchers backed by github.com/dlclark/regexp2, which supports the
// lookahead some share-link shapes need.
package regexp2

import (
	"net/url"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/fwojciec/linkid"
)

// MatchTimeout bounds a single pattern evaluation against hostile input.
const MatchTimeout = time.Second

// Ensure Profile implements linkid.Profile at compile time.
var _ linkid.Profile = (*Profile)(nil)

// matcher pairs a pattern with the capture that holds the value.
type matcher struct {
	re    *regexp2.Regexp
	index int
	title int
	mine  linkid.Token
}

// Profile is an immutable matcher table for one platform.
// Profile is safe for concurrent use by multiple goroutines.
type Profile struct {
	platform  linkid.Platform
	hosts     []string
	groups    map[linkid.Group][]matcher
	order     map[linkid.Category][]linkid.Group
	resolved  map[linkid.Category][]linkid.Group
	fallback  map[linkid.Category][]linkid.Group
	mixItems  []linkid.Group
	secondary map[linkid.Token]*regexp2.Regexp
	// decodeTitles percent-decodes captured title slugs.
	decodeTitles bool
}

// Platform returns the platform this profile recognizes.
func (p *Profile) Platform() linkid.Platform {
	return p.platform
}

// Hosts returns the registrable domains owned by the platform.
func (p *Profile) Hosts() []string {
	return p.hosts
}

// Groups returns the groups consulted for category, in declared order.
func (p *Profile) Groups(category linkid.Category) []linkid.Group {
	return p.order[category]
}

// ResolvedGroups returns the groups consulted on a resolved short-link URL.
// Categories without an override use Groups(category).
func (p *Profile) ResolvedGroups(category linkid.Category) []linkid.Group {
	if groups, ok := p.resolved[category]; ok {
		return groups
	}
	return p.order[category]
}

// FallbackGroups returns groups consulted on resolved text when
// Groups(category) produced nothing.
func (p *Profile) FallbackGroups(category linkid.Category) []linkid.Group {
	return p.fallback[category]
}

// MixItemGroups returns groups whose ids name items of a collection.
func (p *Profile) MixItemGroups() []linkid.Group {
	return p.mixItems
}

// Match applies the group's matchers in declaration order.
// Empty captures are dropped. A pattern that exceeds MatchTimeout
// contributes the captures found before the timeout.
func (p *Profile) Match(group linkid.Group, text string) []linkid.Candidate {
	var candidates []linkid.Candidate
	for _, m := range p.groups[group] {
		match, err := m.re.FindStringMatch(text)
		for match != nil && err == nil {
			if c, ok := p.candidate(group, m, match); ok {
				candidates = append(candidates, c)
			}
			match, err = m.re.FindNextMatch(match)
		}
	}
	return candidates
}

func (p *Profile) candidate(group linkid.Group, m matcher, match *regexp2.Match) (linkid.Candidate, bool) {
	value := groupString(match, m.index)
	if value == "" {
		return linkid.Candidate{}, false
	}
	c := linkid.Candidate{
		Group: group,
		Match: match.String(),
		Value: value,
		Mine:  m.mine,
	}
	if m.title > 0 {
		c.Title = groupString(match, m.title)
		if p.decodeTitles {
			c.Title = decodeTitle(c.Title)
		}
	}
	return c, true
}

// Mine returns the first capture of the secondary pattern for token.
func (p *Profile) Mine(token linkid.Token, body string) string {
	re, ok := p.secondary[token]
	if !ok || body == "" {
		return ""
	}
	match, err := re.FindStringMatch(body)
	if err != nil || match == nil {
		return ""
	}
	return groupString(match, 1)
}

func groupString(match *regexp2.Match, index int) string {
	g := match.GroupByNumber(index)
	if g == nil {
		return ""
	}
	return g.String()
}

// decodeTitle percent-decodes a title slug, keeping it verbatim when the
// escape sequences are malformed.
func decodeTitle(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// compile builds a pattern with the package match timeout applied.
func compile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.None)
	re.MatchTimeout = MatchTimeout
	return re
}

func id(expr string) matcher {
	return matcher{re: compile(expr), index: 1}
}

func whole(expr string) matcher {
	return matcher{re: compile(expr), index: 0}
}

func mined(expr string, token linkid.Token) matcher {
	return matcher{re: compile(expr), index: 1, mine: token}
}
