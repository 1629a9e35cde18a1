package harvester

import (
	"fmt"
	"net/url"
	"strings"
)

// DomainKey derives the dispatch key for a URL: the host, lowercased, with a
// leading "www." label stripped and only the last two dot-separated labels
// kept. "https://www.doctors.practo.com/x" and "https://practo.com/y" both
// map to "practo.com". Dispatch is exact-match on this key only.
func DomainKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		host = strings.Join(parts[len(parts)-2:], ".")
	}
	return host, nil
}
