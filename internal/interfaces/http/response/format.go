package response

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Format is the negotiated response shape.
type Format int

const (
	FormatHTML Format = iota
	FormatJSON
	FormatJSONP
)

// Negotiated carries the chosen format plus the callback name for JSONP.
type Negotiated struct {
	Format   Format
	Callback string
}

// Negotiate decides the response shape for a list endpoint. JSONP wins when
// a callback parameter is present and the client accepts text/javascript;
// otherwise JSON when the preferred type between text/html and
// application/json resolves to JSON; otherwise HTML.
func Negotiate(c *gin.Context) Negotiated {
	if cb := c.Query("callback"); cb != "" && acceptsJavascript(c) {
		return Negotiated{Format: FormatJSONP, Callback: cb}
	}
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		return Negotiated{Format: FormatJSON}
	}
	return Negotiated{Format: FormatHTML}
}

// NegotiateJSON is Negotiate for endpoints with no HTML shape: the result is
// either JSON or JSONP.
func NegotiateJSON(c *gin.Context) Negotiated {
	if cb := c.Query("callback"); cb != "" && acceptsJavascript(c) {
		return Negotiated{Format: FormatJSONP, Callback: cb}
	}
	return Negotiated{Format: FormatJSON}
}

func acceptsJavascript(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	if accept == "" {
		return true
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch mediaType {
		case "text/javascript", "application/javascript", "text/*", "*/*":
			return true
		}
	}
	return false
}
