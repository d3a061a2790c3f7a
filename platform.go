package linkid

// Platform identifies a short-video platform.
type Platform string

// Supported platforms. PlatformAuto asks the extractor to pick the platform
// from the hosts of the URLs found in the text.
const (
	PlatformAuto   Platform = ""
	PlatformDouyin Platform = "douyin"
	PlatformTikTok Platform = "tiktok"
)

// ParsePlatform converts a user-supplied name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformAuto, PlatformDouyin, PlatformTikTok:
		return Platform(s), nil
	case "auto":
		return PlatformAuto, nil
	}
	return "", Errorf(EINVALID, "unsupported platform %q", s)
}
