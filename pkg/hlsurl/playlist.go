package hlsurl

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrMalformedPlaylist is returned when the playlist bytes cannot be treated
// as an HLS text document at all.
var ErrMalformedPlaylist = errors.New("malformed playlist")

const playlistHeader = "#EXTM3U"

// RewritePlaylist resolves every segment reference in the playlist text
// against basePath and returns the rewritten document together with the
// number of segment references it contains. Directive lines and blank lines
// are preserved verbatim.
func RewritePlaylist(content, basePath string) (string, int, error) {
	if !utf8.ValidString(content) {
		return "", 0, ErrMalformedPlaylist
	}
	if !strings.HasPrefix(strings.TrimSpace(content), playlistHeader) {
		return "", 0, ErrMalformedPlaylist
	}

	lines := strings.Split(content, "\n")
	refs := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.HasSuffix(trimmed, SegmentSuffix) {
			continue
		}
		lines[i] = Resolve(trimmed, basePath)
		refs++
	}
	return strings.Join(lines, "\n"), refs, nil
}
