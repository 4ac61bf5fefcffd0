package profilescan

import (
	"net/url"
	"strings"
)

// Platform identifies a supported profile-hosting site.
type Platform string

// Supported platforms. Adding a platform requires a new extraction strategy.
const (
	PlatformFiverr     Platform = "fiverr"
	PlatformUpwork     Platform = "upwork"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformFreelancer Platform = "freelancer"
)

// Platforms returns all supported platforms in identification priority order.
func Platforms() []Platform {
	return []Platform{
		PlatformFiverr,
		PlatformUpwork,
		PlatformLinkedIn,
		PlatformFreelancer,
	}
}

// Domain returns the domain marker used to recognize the platform in a URL host.
// Returns an empty string for unknown platforms.
func (p Platform) Domain() string {
	switch p {
	case PlatformFiverr:
		return "fiverr.com"
	case PlatformUpwork:
		return "upwork.com"
	case PlatformLinkedIn:
		return "linkedin.com"
	case PlatformFreelancer:
		return "freelancer.com"
	}
	return ""
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	return p.Domain() != ""
}

// ParsePlatform converts a platform name (case-insensitive) to a Platform.
// Returns EUNSUPPORTED if the name is not a supported platform.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if !p.Valid() {
		return "", Errorf(EUNSUPPORTED, "platform must be one of fiverr, upwork, linkedin, or freelancer; got %q", name)
	}
	return p, nil
}

// IdentifyPlatform maps a profile URL to its platform without any network access.
//
// The URL must be an absolute http(s) URL; otherwise EINVALIDURL is returned
// and no domain matching is attempted. The host is matched by substring
// containment against each platform's domain marker in the order returned by
// Platforms; the first match wins. Returns EUNSUPPORTED if nothing matches.
func IdentifyPlatform(rawURL string) (Platform, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", WrapError(EINVALIDURL, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALIDURL, "invalid URL %q: scheme must be http or https", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", Errorf(EINVALIDURL, "invalid URL %q: missing host", rawURL)
	}

	for _, p := range Platforms() {
		if strings.Contains(host, p.Domain()) {
			return p, nil
		}
	}
	return "", Errorf(EUNSUPPORTED, "unsupported platform URL %q", rawURL)
}
