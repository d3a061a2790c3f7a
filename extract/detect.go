package extract

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/fwojciec/linkid"
	"golang.org/x/net/publicsuffix"
)

// matchTimeout bounds a single URL scan of the input text.
const matchTimeout = time.Second

// urlPattern finds URLs in free text. Full-width punctuation common in
// share messages terminates a URL.
var urlPattern = func() *regexp2.Regexp {
	re := regexp2.MustCompile("https?://[^\\s\"<>\\\\^`{|}，。；！？、【】《》]+", regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}()

// FindURLs returns every URL in text, in order of occurrence.
func FindURLs(text string) []string {
	var urls []string
	m, err := urlPattern.FindStringMatch(text)
	for m != nil && err == nil {
		urls = append(urls, m.String())
		m, err = urlPattern.FindNextMatch(m)
	}
	return urls
}

// DetectPlatform returns the platform owning the first URL in text whose
// registrable domain belongs to one of profiles. The bool is false when no
// URL belongs to a known platform.
func DetectPlatform(profiles map[linkid.Platform]linkid.Profile, text string) (linkid.Platform, bool) {
	platforms := make([]linkid.Platform, 0, len(profiles))
	for p := range profiles {
		platforms = append(platforms, p)
	}
	slices.Sort(platforms)

	for _, raw := range FindURLs(text) {
		domain := registrableDomain(raw)
		if domain == "" {
			continue
		}
		for _, p := range platforms {
			if slices.Contains(profiles[p].Hosts(), domain) {
				return p, true
			}
		}
	}
	return linkid.PlatformAuto, false
}

// registrableDomain returns the eTLD+1 of rawURL's host, or "".
func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}
