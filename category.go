package linkid

// Category is the kind of identifier a caller wants back.
type Category string

// Supported categories.
const (
	CategoryDetail  Category = "detail"
	CategoryAccount Category = "account"
	CategoryMix     Category = "mix"
	CategoryLive    Category = "live"
	CategoryRaw     Category = "raw"
)

// ParseCategory converts a user-supplied name into a Category.
// "user" is accepted as an alias for account and the empty string for raw.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryDetail, CategoryAccount, CategoryMix, CategoryLive, CategoryRaw:
		return Category(s), nil
	case "user":
		return CategoryAccount, nil
	case "":
		return CategoryRaw, nil
	}
	return "", Errorf(EINVALID, "unsupported category %q", s)
}

// Group names a set of matchers that recognize one URL shape.
type Group string

// Matcher groups. A profile may leave a group empty when its platform has
// no such URL shape.
const (
	GroupDetailLink        Group = "detail-link"
	GroupDetailShareLink   Group = "detail-share-link"
	GroupAccountModalEmbed Group = "account-modal-embed"
	GroupDetailSearchEmbed Group = "detail-search-embed"
	GroupDetailDiscover    Group = "detail-discover-embed"
	GroupChannelEmbed      Group = "channel-embed"

	GroupAccountLink      Group = "account-link"
	GroupAccountShareLink Group = "account-share-link"

	GroupMixLink      Group = "mix-link"
	GroupMixShareLink Group = "mix-share-link"
	GroupMixItemLink  Group = "mix-item-link"

	GroupLiveLink          Group = "live-link"
	GroupLiveSelfLink      Group = "live-self-link"
	GroupLiveShareLink     Group = "live-share-link"
	GroupLiveRedirectParam Group = "live-redirect-param"

	GroupShortLink Group = "short-link"
)

// Token names an identifier that can only be mined from a fetched body.
type Token string

// Mining tokens.
const (
	TokenNone         Token = ""
	TokenUserID       Token = "internal-user-id"
	TokenRoomID       Token = "internal-room-id"
	TokenCollectionID Token = "internal-collection-id"
	TokenWebRID       Token = "live-web-id"
)
