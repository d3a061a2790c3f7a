package extract_test

import (
	"testing"

	"github.com/fwojciec/linkid"
	"github.com/fwojciec/linkid/extract"
	"github.com/fwojciec/linkid/regexp2"
	"github.com/stretchr/testify/assert"
)

func TestFindURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no URLs",
			text: "just words",
			want: nil,
		},
		{
			name: "URLs in order",
			text: "a https://v.douyin.com/x/ b http://example.com/p?q=1 c",
			want: []string{"https://v.douyin.com/x/", "http://example.com/p?q=1"},
		},
		{
			name: "stops at full-width punctuation",
			text: "看https://vm.tiktok.com/ZM1/。好",
			want: []string{"https://vm.tiktok.com/ZM1/"},
		},
		{
			name: "stops at quotes",
			text: `<a href="https://www.douyin.com/video/1">`,
			want: []string{"https://www.douyin.com/video/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.FindURLs(tt.text))
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	t.Parallel()

	profiles := regexp2.Profiles()

	tests := []struct {
		name   string
		text   string
		want   linkid.Platform
		wantOK bool
	}{
		{name: "douyin web", text: "https://www.douyin.com/video/1", want: linkid.PlatformDouyin, wantOK: true},
		{name: "douyin short", text: "https://v.douyin.com/abc/", want: linkid.PlatformDouyin, wantOK: true},
		{name: "douyin share host", text: "https://www.iesdouyin.com/share/video/1/", want: linkid.PlatformDouyin, wantOK: true},
		{name: "douyin live share", text: "https://webcast.amemv.com/douyin/webcast/reflow/1", want: linkid.PlatformDouyin, wantOK: true},
		{name: "tiktok", text: "https://www.tiktok.com/@u", want: linkid.PlatformTikTok, wantOK: true},
		{name: "tiktok short", text: "https://vm.tiktok.com/ZM1/", want: linkid.PlatformTikTok, wantOK: true},
		{name: "first known URL wins", text: "https://example.com https://vt.tiktok.com/a https://v.douyin.com/b", want: linkid.PlatformTikTok, wantOK: true},
		{name: "lookalike host", text: "https://douyin.com.evil.example/video/1", wantOK: false},
		{name: "unknown host", text: "https://example.com/video/1", wantOK: false},
		{name: "no URL", text: "douyin.com", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := extract.DetectPlatform(profiles, tt.text)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDirect(t *testing.T) {
	t.Parallel()

	t.Run("concatenates groups in given order", func(t *testing.T) {
		t.Parallel()

		text := "https://www.iesdouyin.com/share/video/" + detailID2 + "/ https://www.douyin.com/video/" + detailID
		groups := []linkid.Group{linkid.GroupDetailLink, linkid.GroupDetailShareLink}

		candidates := extract.Direct(regexp2.Douyin(), groups, text)

		assert.Equal(t, []string{detailID, detailID2}, extract.Values(candidates))
		assert.Equal(t, linkid.GroupDetailLink, candidates[0].Group)
		assert.Equal(t, linkid.GroupDetailShareLink, candidates[1].Group)
	})

	t.Run("returns nil values for no candidates", func(t *testing.T) {
		t.Parallel()

		candidates := extract.Direct(regexp2.Douyin(), []linkid.Group{linkid.GroupDetailLink}, "nothing")

		assert.Empty(t, candidates)
		assert.Nil(t, extract.Values(candidates))
	})
}
