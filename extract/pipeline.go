// Package extract provides the identifier extraction pipeline.
// It coordinates direct matching, short-link resolution and embedded-data
// mining across the platform profiles.
package extract

import (
	"context"

	"github.com/fwojciec/linkid"
)

var _ linkid.Extractor = (*Pipeline)(nil)

// Pipeline recovers identifiers from free text.
//
// Short links are resolved one at a time in the order they occur unless
// Concurrency is greater than one, in which case they are resolved by a
// bounded worker pool and reordered before merging.
type Pipeline struct {
	Profiles  map[linkid.Platform]linkid.Profile
	Requester linkid.Requester

	// Miners overrides the profile's own miner per platform.
	Miners map[linkid.Platform]linkid.Miner

	RateLimiter linkid.HostLimiter
	Concurrency int
}

// Extract runs one extraction for req.
func (p *Pipeline) Extract(ctx context.Context, req linkid.Request) (*linkid.Result, error) {
	switch req.Category {
	case linkid.CategoryRaw:
		text, failures := p.resolver().Expand(ctx, req.Text, req.Proxy, p.Concurrency)
		return &linkid.Result{
			Platform: req.Platform,
			Category: req.Category,
			Text:     text,
			Failures: failures,
		}, nil
	case linkid.CategoryDetail, linkid.CategoryAccount, linkid.CategoryMix, linkid.CategoryLive:
	default:
		return nil, linkid.Errorf(linkid.EINVALID, "unsupported category %q", req.Category)
	}

	result := &linkid.Result{Platform: req.Platform, Category: req.Category}
	if req.Category == linkid.CategoryMix {
		result.Mix = &linkid.MixResult{Flag: linkid.MixNone}
	}

	platform := req.Platform
	if platform == linkid.PlatformAuto {
		detected, ok := DetectPlatform(p.Profiles, req.Text)
		if !ok {
			return result, nil
		}
		platform = detected
	}
	profile, ok := p.Profiles[platform]
	if !ok {
		return nil, linkid.Errorf(linkid.EINVALID, "unsupported platform %q", platform)
	}
	result.Platform = platform

	r := &run{
		pipeline: p,
		profile:  profile,
		miner:    p.miner(platform, profile),
		proxy:    req.Proxy,
		result:   result,
	}
	resolved := r.resolveShortLinks(ctx, req.Text)

	if req.Category == linkid.CategoryMix {
		result.Mix = r.mix(ctx, req.Text, resolved)
		result.IDs = result.Mix.IDs
		return result, nil
	}
	result.IDs = Values(r.collectAll(ctx, req.Category, req.Text, resolved))
	return result, nil
}

func (p *Pipeline) resolver() *Resolver {
	return &Resolver{Requester: p.Requester, Limiter: p.RateLimiter}
}

func (p *Pipeline) miner(platform linkid.Platform, profile linkid.Profile) linkid.Miner {
	if m, ok := p.Miners[platform]; ok && m != nil {
		return m
	}
	return profile
}

// run holds the state of one extraction call.
type run struct {
	pipeline *Pipeline
	profile  linkid.Profile
	miner    linkid.Miner
	proxy    string
	result   *linkid.Result
}

// resolveShortLinks resolves every short link in text and returns the
// resolved URLs of the successful ones, in encounter order.
func (r *run) resolveShortLinks(ctx context.Context, text string) []string {
	shorts := r.profile.Match(linkid.GroupShortLink, text)
	if len(shorts) == 0 {
		return nil
	}
	urls := make([]string, len(shorts))
	for i, c := range shorts {
		urls[i] = c.Value
	}

	var resolved []string
	for _, o := range r.pipeline.resolver().ResolveAll(ctx, urls, r.proxy, r.pipeline.Concurrency) {
		if !o.OK() {
			r.result.Failures = append(r.result.Failures, o)
			continue
		}
		resolved = append(resolved, o.Resolved)
	}
	return resolved
}

// collectAll runs the category's groups over text and its resolved groups
// over each resolved URL. Fallback groups are tried on a resolved URL only
// when the resolved groups found nothing in it.
func (r *run) collectAll(ctx context.Context, category linkid.Category, text string, resolved []string) []linkid.Candidate {
	candidates := r.collect(ctx, r.profile.Groups(category), text)
	groups := r.profile.ResolvedGroups(category)
	for _, u := range resolved {
		found := r.collect(ctx, groups, u)
		if len(found) == 0 {
			found = r.collect(ctx, r.profile.FallbackGroups(category), u)
		}
		candidates = append(candidates, found...)
	}
	return candidates
}

// collect matches groups against text and mines the candidates that need
// a page fetch. Candidates whose page cannot be fetched or holds no id are
// dropped.
func (r *run) collect(ctx context.Context, groups []linkid.Group, text string) []linkid.Candidate {
	candidates := Direct(r.profile, groups, text)
	if len(candidates) == 0 {
		return nil
	}

	mined := ordered(ctx, len(candidates), r.pipeline.Concurrency, func(ctx context.Context, i int) minedCandidate {
		return r.mine(ctx, candidates[i])
	})

	out := make([]linkid.Candidate, 0, len(candidates))
	for _, m := range mined {
		if m.failure != nil {
			r.result.Failures = append(r.result.Failures, *m.failure)
			continue
		}
		if m.candidate.Value == "" {
			continue
		}
		out = append(out, m.candidate)
	}
	return out
}

type minedCandidate struct {
	candidate linkid.Candidate
	failure   *linkid.Outcome
}

// mine fetches the page of a candidate that carries a mining token and
// replaces its value with the mined id.
func (r *run) mine(ctx context.Context, c linkid.Candidate) minedCandidate {
	if c.Mine == linkid.TokenNone {
		return minedCandidate{candidate: c}
	}
	page := c.Value
	if err := waitHost(ctx, r.pipeline.RateLimiter, page); err != nil {
		return minedCandidate{failure: &linkid.Outcome{URL: page, Err: err}}
	}
	body, err := r.pipeline.Requester.FetchText(ctx, page, r.proxy)
	if err != nil {
		return minedCandidate{failure: &linkid.Outcome{URL: page, Err: err}}
	}
	c.Value = r.miner.Mine(c.Mine, body)
	c.Mine = linkid.TokenNone
	return minedCandidate{candidate: c}
}

// mix recovers collection ids. Item ids win over container ids; with
// neither the flag is MixNone.
func (r *run) mix(ctx context.Context, text string, resolved []string) *linkid.MixResult {
	if groups := r.profile.MixItemGroups(); len(groups) > 0 {
		items := r.collect(ctx, groups, text)
		for _, u := range resolved {
			items = append(items, r.collect(ctx, groups, u)...)
		}
		if len(items) > 0 {
			return &linkid.MixResult{Flag: linkid.MixItem, IDs: Values(items)}
		}
	}

	containers := r.collectAll(ctx, linkid.CategoryMix, text, resolved)
	if len(containers) == 0 {
		return &linkid.MixResult{Flag: linkid.MixNone}
	}
	return &linkid.MixResult{
		Flag:   linkid.MixContainer,
		IDs:    Values(containers),
		Titles: titles(containers),
	}
}

// titles returns the titles aligned with candidates, or nil when none of
// them has one.
func titles(candidates []linkid.Candidate) []string {
	out := make([]string, len(candidates))
	var titled bool
	for i, c := range candidates {
		out[i] = c.Title
		titled = titled || c.Title != ""
	}
	if !titled {
		return nil
	}
	return out
}
