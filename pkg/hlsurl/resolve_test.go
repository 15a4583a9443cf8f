package hlsurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const base = "https://h/x/y/"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "relative bare", ref: "003.ts", want: "https://h/x/y/003.ts"},
		{name: "relative rooted", ref: "/003.ts", want: "https://h/x/y/003.ts"},
		{name: "already canonical", ref: "https://h/x/y/003.ts", want: "https://h/x/y/003.ts"},
		{name: "same origin wrong path", ref: "https://h/wrong/003.ts", want: "https://h/x/y/003.ts"},
		{name: "same origin no path", ref: "https://h/003.ts", want: "https://h/x/y/003.ts"},
		{name: "cross origin untouched", ref: "https://other/x/y/003.ts", want: "https://other/x/y/003.ts"},
		{name: "cross scheme untouched", ref: "http://h/x/y/003.ts", want: "http://h/x/y/003.ts"},
		{name: "directive untouched", ref: "#EXTINF:10.0,", want: "#EXTINF:10.0,"},
		{name: "empty untouched", ref: "", want: ""},
		{name: "non segment untouched", ref: "playlist.m3u8", want: "playlist.m3u8"},
		{name: "malformed absolute untouched", ref: "https://h:bad port/003.ts", want: "https://h:bad port/003.ts"},
		{name: "surrounding whitespace trimmed", ref: "  003.ts  ", want: "https://h/x/y/003.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.ref, base))
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	refs := []string{
		"003.ts",
		"/003.ts",
		"https://h/x/y/003.ts",
		"https://h/wrong/003.ts",
		"https://other/x/y/003.ts",
		"#EXT-X-VERSION:3",
		"",
		"weird name with spaces.ts",
	}
	bases := []string{
		base,
		"https://storage.example.com/media/published/video_1/",
		"http://localhost:9000/media/published/video_2/",
	}
	for _, b := range bases {
		for _, r := range refs {
			once := Resolve(r, b)
			assert.Equal(t, once, Resolve(once, b), "ref=%q base=%q", r, b)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://h/x/y/playlist.m3u8", "https://h/x/y/"},
		{"https://h/x/y/playlist.m3u8?v=12345", "https://h/x/y/"},
		{"https://h/playlist.m3u8", "https://h/"},
		{"playlist.m3u8", "playlist.m3u8"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BasePath(tt.url), tt.url)
	}
}
