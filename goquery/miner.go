// Package goquery narrows fetched pages to the markup that carries embedded
// state before ids are mined from them.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkid"
)

// hydrationSelector matches the script blocks both platforms use to ship
// server state to the client.
const hydrationSelector = "script#SIGI_STATE, " +
	"script#__UNIVERSAL_DATA_FOR_REHYDRATION__, " +
	"script#RENDER_DATA, " +
	"script#__NEXT_DATA__"

// Ensure Miner implements linkid.Miner at compile time.
var _ linkid.Miner = (*Miner)(nil)

// Miner mines ids from the hydration scripts and canonical link of a page
// first, and from the whole body only when those yield nothing.
type Miner struct {
	next linkid.Miner
}

// NewMiner creates a Miner that delegates pattern matching to next.
func NewMiner(next linkid.Miner) *Miner {
	return &Miner{next: next}
}

// Mine returns the first id for token found in a page section, falling back
// to the whole body.
func (m *Miner) Mine(token linkid.Token, body string) string {
	for _, section := range Sections(body) {
		if id := m.next.Mine(token, section); id != "" {
			return id
		}
	}
	return m.next.Mine(token, body)
}

// Sections returns the contents of the hydration scripts in document order,
// followed by the canonical link rendered as a "canonical" JSON field.
// Percent-encoded RENDER_DATA is decoded. Returns nil for bodies that hold
// none of them.
func Sections(html string) []string {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var sections []string
	doc.Find(hydrationSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if id, _ := sel.Attr("id"); id == "RENDER_DATA" {
			if decoded, err := url.PathUnescape(text); err == nil {
				text = decoded
			}
		}
		sections = append(sections, text)
	})

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && href != "" {
		sections = append(sections, `"canonical":"`+href+`"`)
	}
	return sections
}
