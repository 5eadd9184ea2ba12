package response

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "captn_flash"

// Notice is a one-shot user-facing message carried across the
// redirect-after-mutation hop.
type Notice struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// SetNotice queues a notice for the next page render.
func SetNotice(c *gin.Context, n Notice) {
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	encoded := base64.URLEncoding.EncodeToString(raw)
	c.SetCookie(flashCookie, encoded, 60, "/", "", false, true)
}

// TakeNotice returns the pending notice, if any, and clears it.
func TakeNotice(c *gin.Context) *Notice {
	encoded, err := c.Cookie(flashCookie)
	if err != nil || encoded == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}

// NotFound answers with the framework's default not-found body, used when a
// route declines to handle an invalid range request.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}
