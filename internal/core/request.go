// AngelaMos | 2026
// request.go

package core

import (
	"mime"
	"net/http"
)

// IsFormRequest reports a url-encoded body, which the browser pages post.
func IsFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded"
}
