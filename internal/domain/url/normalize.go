// Package url turns command-line input into navigable URLs.
package url

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var passthroughSchemes = []string{"http://", "https://", "file://", "about:", "data:"}

// Normalize returns input as an absolute URL. Input that already carries a
// known scheme is returned unchanged, existing-looking paths become file://
// URLs and host-like input gets https://.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	lower := strings.ToLower(input)
	for _, scheme := range passthroughSchemes {
		if strings.HasPrefix(lower, scheme) {
			return input
		}
	}

	if isLocalPath(input) {
		abs, err := filepath.Abs(expandHome(input))
		if err != nil {
			return input
		}
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}

	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL reports whether input reads as an address rather than free
// text: a known scheme, or a dot and no spaces.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	lower := strings.ToLower(input)
	for _, scheme := range passthroughSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// ExtractOrigin reduces rawURL to scheme://host[:port], or "" when it has no
// host.
func ExtractOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "~/")
}
