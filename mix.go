package linkid

// MixFlag says what the ids of a MixResult name.
type MixFlag int

// Mix flags. MixNone corresponds to "no collection-like id found".
const (
	MixNone MixFlag = iota
	MixContainer
	MixItem
)

// String returns the tri-state as "null", "true" or "false".
func (f MixFlag) String() string {
	switch f {
	case MixContainer:
		return "true"
	case MixItem:
		return "false"
	}
	return "null"
}

// Container reports the flag as a boolean. ok is false for MixNone.
func (f MixFlag) Container() (container, ok bool) {
	switch f {
	case MixContainer:
		return true, true
	case MixItem:
		return false, true
	}
	return false, false
}

// MixResult holds collection ids recovered from text.
type MixResult struct {
	Flag MixFlag
	IDs  []string

	// Titles is aligned by index with IDs. Entries are empty where the
	// platform embeds no human-readable slug. Nil when no id has a title.
	Titles []string
}

// DiscriminateMix decides whether a request names a collection or an item
// belonging to one. A collection id wins over an item id.
func DiscriminateMix(collectionID, itemID string) (MixFlag, string) {
	if collectionID != "" {
		return MixContainer, collectionID
	}
	if itemID != "" {
		return MixItem, itemID
	}
	return MixNone, ""
}
