package extract

import "github.com/fwojciec/linkid"

// Direct applies the profile's matchers for groups, in the given order, to
// text. It performs no network access. Duplicates across groups are kept.
func Direct(profile linkid.Profile, groups []linkid.Group, text string) []linkid.Candidate {
	var candidates []linkid.Candidate
	for _, g := range groups {
		candidates = append(candidates, profile.Match(g, text)...)
	}
	return candidates
}

// Values returns the captured values of candidates.
func Values(candidates []linkid.Candidate) []string {
	if len(candidates) == 0 {
		return nil
	}
	values := make([]string, len(candidates))
	for i, c := range candidates {
		values[i] = c.Value
	}
	return values
}
