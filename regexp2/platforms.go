package regexp2

import (
	"github.com/dlclark/regexp2"
	"github.com/fwojciec/linkid"
)

// detailGroups is the declared order of detail groups shared by both platforms.
var detailGroups = []linkid.Group{
	linkid.GroupDetailLink,
	linkid.GroupDetailShareLink,
	linkid.GroupAccountModalEmbed,
	linkid.GroupDetailSearchEmbed,
	linkid.GroupDetailDiscover,
	linkid.GroupChannelEmbed,
}

// Secondary patterns for mining ids out of fetched page bodies.
var (
	// webRID tolerates the backslash-escaped quoting of JSON embedded in
	// server-rendered HTML.
	webRID       = compile(`\\?"webRid\\?":\\?"([0-9]+?)\\?"`)
	secUID       = compile(`"secUid":"([A-Za-z0-9_-]+)"`)
	roomID       = compile(`"roomId":"([0-9]+)"`)
	collectionID = compile(`"canonical":"\S+?([0-9]{19})"`)
)

var (
	douyin = newDouyinProfile()
	tiktok = newTikTokProfile()
)

// Douyin returns the Douyin profile.
func Douyin() *Profile {
	return douyin
}

// TikTok returns the TikTok profile.
func TikTok() *Profile {
	return tiktok
}

// Profiles returns every built-in profile keyed by platform.
func Profiles() map[linkid.Platform]linkid.Profile {
	return map[linkid.Platform]linkid.Profile{
		linkid.PlatformDouyin: douyin,
		linkid.PlatformTikTok: tiktok,
	}
}

func newDouyinProfile() *Profile {
	// The account pattern carries both the account id and an optional
	// modal_id naming a detail opened over the account page.
	const accountLink = `https://www\.douyin\.com/user/([A-Za-z0-9_-]+)(?:\S*?\bmodal_id=([0-9]{19}))?`

	return &Profile{
		platform: linkid.PlatformDouyin,
		hosts:    []string{"douyin.com", "iesdouyin.com", "amemv.com"},
		groups: map[linkid.Group][]matcher{
			linkid.GroupDetailLink: {
				id(`https://www\.douyin\.com/(?:video|note|slides)/([0-9]{19})`),
			},
			linkid.GroupDetailShareLink: {
				id(`https://www\.iesdouyin\.com/share/(?:video|note|slides)/([0-9]{19})/`),
			},
			linkid.GroupAccountModalEmbed: {
				{re: compile(accountLink), index: 2},
			},
			linkid.GroupDetailSearchEmbed: {
				id(`https://www\.douyin\.com/search/\S+?modal_id=([0-9]{19})`),
			},
			linkid.GroupDetailDiscover: {
				id(`https://www\.douyin\.com/discover\S*?modal_id=([0-9]{19})`),
			},
			linkid.GroupChannelEmbed: {
				id(`https://www\.douyin\.com/channel/[0-9]+?\?modal_id=([0-9]{19})`),
			},
			linkid.GroupAccountLink: {
				id(accountLink),
			},
			linkid.GroupAccountShareLink: {
				id(`https://www\.iesdouyin\.com/share/user/(\S*?)\?`),
			},
			linkid.GroupMixLink: {
				id(`https://www\.douyin\.com/collection/([0-9]{19})`),
			},
			linkid.GroupMixShareLink: {
				id(`https://www\.iesdouyin\.com/share/mix/detail/([0-9]{19})/`),
			},
			linkid.GroupLiveLink: {
				id(`https://live\.douyin\.com/([0-9]+)`),
			},
			linkid.GroupLiveSelfLink: {
				id(`https://www\.douyin\.com/follow\?webRid=([0-9]+)`),
			},
			linkid.GroupLiveShareLink: {
				{re: compile(`https://webcast\.amemv\.com/douyin/webcast/reflow/\S+`), index: 0, mine: linkid.TokenWebRID},
			},
			linkid.GroupLiveRedirectParam: {
				id(`webRid=([0-9]+)`),
			},
			linkid.GroupShortLink: {
				whole(`https://v\.douyin\.com/[A-Za-z0-9_-]+/?`),
			},
		},
		order: map[linkid.Category][]linkid.Group{
			linkid.CategoryDetail:  detailGroups,
			linkid.CategoryAccount: {linkid.GroupAccountLink, linkid.GroupAccountShareLink},
			linkid.CategoryMix:     {linkid.GroupMixLink, linkid.GroupMixShareLink},
			linkid.CategoryLive:    {linkid.GroupLiveLink, linkid.GroupLiveSelfLink, linkid.GroupLiveShareLink},
		},
		// Resolved live short links are matched without page fetches.
		resolved: map[linkid.Category][]linkid.Group{
			linkid.CategoryLive: {linkid.GroupLiveLink, linkid.GroupLiveSelfLink},
		},
		fallback: map[linkid.Category][]linkid.Group{
			linkid.CategoryLive: {linkid.GroupLiveRedirectParam},
		},
		mixItems: detailGroups,
		secondary: map[linkid.Token]*regexp2.Regexp{
			linkid.TokenWebRID: webRID,
		},
	}
}

func newTikTokProfile() *Profile {
	return &Profile{
		platform: linkid.PlatformTikTok,
		hosts:    []string{"tiktok.com"},
		groups: map[linkid.Group][]matcher{
			linkid.GroupDetailLink: {
				id(`https://www\.tiktok\.com/@[^\s/]+/(?!playlist)(?:(?:video|photo)/([0-9]{19}))?`),
			},
			linkid.GroupAccountLink: {
				mined(`(https://www\.tiktok\.com/@[^\s/?#]+)`, linkid.TokenUserID),
			},
			linkid.GroupMixLink: {
				{re: compile(`https://www\.tiktok\.com/@\S+?/(?:playlist|collection)/([^\s/]+?)-([0-9]{19})`), index: 2, title: 1},
			},
			linkid.GroupMixItemLink: {
				mined(`(https://www\.tiktok\.com/@[^\s/]+/(?:video|photo)/[0-9]{19})`, linkid.TokenCollectionID),
			},
			linkid.GroupLiveLink: {
				mined(`(https://www\.tiktok\.com/@[^\s/]+/live)`, linkid.TokenRoomID),
			},
			linkid.GroupShortLink: {
				whole(`https://(?:vm|vt)\.tiktok\.com/[A-Za-z0-9_-]+/?`),
				whole(`https://www\.tiktok\.com/t/[A-Za-z0-9_-]+/?`),
			},
		},
		order: map[linkid.Category][]linkid.Group{
			linkid.CategoryDetail:  {linkid.GroupDetailLink},
			linkid.CategoryAccount: {linkid.GroupAccountLink},
			linkid.CategoryMix:     {linkid.GroupMixItemLink, linkid.GroupMixLink},
			linkid.CategoryLive:    {linkid.GroupLiveLink},
		},
		secondary: map[linkid.Token]*regexp2.Regexp{
			linkid.TokenUserID:       secUID,
			linkid.TokenRoomID:       roomID,
			linkid.TokenCollectionID: collectionID,
			linkid.TokenWebRID:       webRID,
		},
		decodeTitles: true,
	}
}
