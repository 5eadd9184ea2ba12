package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	domainerrors "captn.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// Write renders payload in the negotiated shape: plain JSON, or a JSONP
// function-call wrapper served as JavaScript.
func Write(c *gin.Context, n Negotiated, payload interface{}) {
	if n.Format == FormatJSONP {
		c.Render(http.StatusOK, render.JsonpJSON{Callback: n.Callback, Data: payload})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// List renders items inside the standard list envelope.
func List(c *gin.Context, n Negotiated, items interface{}, total int) {
	Write(c, n, gin.H{
		"meta":  gin.H{"total": total},
		"items": items,
	})
}

// RedirectBack redirects to the referring page, or the schedule root when
// the request carries no referer.
func RedirectBack(c *gin.Context) {
	back := c.Request.Referer()
	if back == "" {
		back = "/"
	}
	c.Redirect(http.StatusFound, back)
}
