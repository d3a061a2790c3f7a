package goquery_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/linkid"
	"github.com/fwojciec/linkid/goquery"
	"github.com/fwojciec/linkid/regexp2"
	"github.com/stretchr/testify/assert"
)

func TestSections(t *testing.T) {
	t.Parallel()

	t.Run("returns hydration scripts in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script id="SIGI_STATE" type="application/json">{"a":1}</script>
<script>var unrelated = 1;</script>
<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">{"b":2}</script>
</head><body></body></html>`

		assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, goquery.Sections(html))
	})

	t.Run("decodes percent-encoded render data", func(t *testing.T) {
		t.Parallel()

		encoded := url.PathEscape(`{"roomId":"7300000000000000001"}`)
		html := `<script id="RENDER_DATA" type="application/json">` + encoded + `</script>`

		assert.Equal(t, []string{`{"roomId":"7300000000000000001"}`}, goquery.Sections(html))
	})

	t.Run("renders canonical link as field", func(t *testing.T) {
		t.Parallel()

		html := `<head><link rel="canonical" href="https://www.tiktok.com/@u/playlist/x-7345678901234567890"></head>`

		assert.Equal(t, []string{`"canonical":"https://www.tiktok.com/@u/playlist/x-7345678901234567890"`}, goquery.Sections(html))
	})

	t.Run("returns nil for plain pages", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.Sections("<p>hello</p>"))
		assert.Nil(t, goquery.Sections(""))
	})
}

func TestMiner_Mine(t *testing.T) {
	t.Parallel()

	miner := goquery.NewMiner(regexp2.TikTok())

	t.Run("prefers hydration state over other scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script>window.suggested = {"secUid":"MS4wSuggested"};</script>
<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">{"userInfo":{"user":{"secUid":"MS4wOwner"}}}</script>
</body></html>`

		assert.Equal(t, "MS4wOwner", miner.Mine(linkid.TokenUserID, html))
	})

	t.Run("mines collection from canonical link", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><link rel="canonical" href="https://www.tiktok.com/@u/playlist/Trip-7345678901234567890"></head></html>`

		assert.Equal(t, "7345678901234567890", miner.Mine(linkid.TokenCollectionID, html))
	})

	t.Run("mines room id from encoded render data", func(t *testing.T) {
		t.Parallel()

		html := `<script id="RENDER_DATA">` + url.PathEscape(`{"room":{"roomId":"42"}}`) + `</script>`

		assert.Equal(t, "42", miner.Mine(linkid.TokenRoomID, html))
	})

	t.Run("falls back to whole body", func(t *testing.T) {
		t.Parallel()

		body := `self.__pace_f.push([1,"{\"webRid\":\"556677\"}"])`

		assert.Equal(t, "556677", miner.Mine(linkid.TokenWebRID, body))
	})

	t.Run("returns empty string when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, miner.Mine(linkid.TokenRoomID, "<html></html>"))
	})
}
