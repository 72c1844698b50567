package core

import (
	"fmt"
	"net/url"
	"strings"
)

// ReencodeURL normalizes a URL to its RFC3986-encoded form. CDN file URLs can
// contain unencoded spaces and brackets; square brackets are pre-escaped since
// net/url refuses them outside of host sections.
func ReencodeURL(u string) (string, error) {
	u = strings.ReplaceAll(u, "[", "%5B")
	u = strings.ReplaceAll(u, "]", "%5D")
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %s, %v", u, err)
	}
	return parsed.String(), nil
}
