package fictionfetch

import (
	"net/url"
	"strings"
)

// ParseFictionSlug extracts the "<id>/<slug>" identifier from a fiction URL,
// e.g. "41656/chaotic-craftsman-worships-the-cube" from
// https://www.royalroad.com/fiction/41656/chaotic-craftsman-worships-the-cube.
//
// The identifier is the primary key for all cached data about a fiction.
func ParseFictionSlug(fictionURL string) (string, error) {
	u, err := url.Parse(fictionURL)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALIDURL, "that does not look like a valid URL: %q", fictionURL)
	}

	var parts []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}

	// Expected: ["fiction", "<id>", "<slug>", ...]
	if len(parts) < 3 || parts[0] != "fiction" {
		return "", Errorf(EINVALIDFORMAT, `expected a fiction URL like "https://www.royalroad.com/fiction/<id>/<slug>"`)
	}

	if !isDigits(parts[1]) {
		return "", Errorf(EINVALIDID, "fiction ID %q did not look numeric", parts[1])
	}

	return parts[1] + "/" + parts[2], nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
