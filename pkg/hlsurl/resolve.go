// Package hlsurl canonicalizes segment references found in HLS playlists.
// The same resolution is applied twice in the system's life: once by the
// packaging pipeline before the playlist is published, and again by the
// playback session before each fragment request. Resolution must therefore
// be idempotent.
package hlsurl

import (
	"net/url"
	"strings"
)

// SegmentSuffix is the filename suffix that marks a playlist line as a media
// segment reference rather than a directive.
const SegmentSuffix = ".ts"

// Resolve maps one playlist reference onto basePath, the canonical directory
// URL an artifact is published under (trailing slash included).
//
// Directives, blank lines and anything not ending in SegmentSuffix pass
// through untouched. References already anchored at basePath are returned
// as-is, which makes the function a fixed point on its own output.
// Absolute URLs on a different origin are never rewritten; same-origin URLs
// with a wrong path keep only their filename and are re-anchored. Everything
// else is treated as a relative reference.
func Resolve(reference, basePath string) string {
	ref := strings.TrimSpace(reference)
	if ref == "" || strings.HasPrefix(ref, "#") || !strings.HasSuffix(ref, SegmentSuffix) {
		return reference
	}

	if strings.HasPrefix(ref, basePath) {
		return ref
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		refURL, err := url.Parse(ref)
		if err != nil {
			// Unparseable absolute-looking reference; leave it alone
			// rather than mangling it further.
			return ref
		}
		baseURL, err := url.Parse(basePath)
		if err != nil {
			return ref
		}
		if origin(refURL) != origin(baseURL) {
			return ref
		}
		filename := ref[strings.LastIndex(ref, "/")+1:]
		return basePath + filename
	}

	return basePath + strings.TrimPrefix(ref, "/")
}

// BasePath derives the directory URL for a playlist: everything up to and
// including the final '/', with any cache-busting query suffix dropped.
func BasePath(playlistURL string) string {
	u := playlistURL
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[:i+1]
	}
	return u
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
