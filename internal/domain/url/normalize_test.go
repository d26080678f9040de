package url

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "http scheme unchanged", input: "http://example.com", want: "http://example.com"},
		{name: "https scheme unchanged", input: "https://example.com", want: "https://example.com"},
		{name: "upper-case scheme unchanged", input: "HTTPS://example.com", want: "HTTPS://example.com"},
		{name: "file scheme unchanged", input: "file:///path/to/file.html", want: "file:///path/to/file.html"},
		{name: "about scheme unchanged", input: "about:blank", want: "about:blank"},
		{name: "data scheme unchanged", input: "data:text/html,hi", want: "data:text/html,hi"},
		{name: "domain gets https", input: "example.com", want: "https://example.com"},
		{name: "domain with path gets https", input: "example.com/path", want: "https://example.com/path"},
		{name: "surrounding spaces trimmed", input: "  example.com ", want: "https://example.com"},
		{name: "free text unchanged", input: "hello world", want: "hello world"},
		{name: "absolute path becomes file url", input: "/tmp/index.html", want: "file:///tmp/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_RelativeAndHomePaths(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(cwd, "page.html")), Normalize("./page.html"))

	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(home, "site", "index.html")), Normalize("~/site/index.html"))
}

func TestLooksLikeURL(t *testing.T) {
	assert.True(t, LooksLikeURL("example.com"))
	assert.True(t, LooksLikeURL("about:blank"))
	assert.False(t, LooksLikeURL(""))
	assert.False(t, LooksLikeURL("hello world"))
	assert.False(t, LooksLikeURL("localhost"))
}

func TestExtractOrigin(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://Example.com/path?q=1", "https://example.com"},
		{"http://localhost:8080/", "http://localhost:8080"},
		{"about:blank", ""},
		{"not a url", ""},
		{"%zz", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractOrigin(tt.input), tt.input)
	}
}
