package extract

import (
	"context"

	"github.com/dlclark/regexp2"
	"github.com/fwojciec/linkid"
)

// Expand replaces every URL in text with the URL it redirects to. URLs that
// cannot be resolved are kept verbatim and reported as failures. All other
// text is returned unchanged.
func (r *Resolver) Expand(ctx context.Context, text, proxy string, concurrency int) (string, []linkid.Outcome) {
	urls := FindURLs(text)
	if len(urls) == 0 {
		return text, nil
	}
	outcomes := r.ResolveAll(ctx, urls, proxy, concurrency)

	var failures []linkid.Outcome
	for _, o := range outcomes {
		if !o.OK() {
			failures = append(failures, o)
		}
	}

	i := 0
	expanded, err := urlPattern.ReplaceFunc(text, func(m regexp2.Match) string {
		if i >= len(outcomes) {
			return m.String()
		}
		o := outcomes[i]
		i++
		if !o.OK() {
			return m.String()
		}
		return o.Resolved
	}, -1, -1)
	if err != nil {
		return text, failures
	}
	return expanded, failures
}
