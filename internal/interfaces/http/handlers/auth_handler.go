package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"captn.backend/internal/infrastructure/identity"
	"captn.backend/internal/interfaces/http/middleware"
	"captn.backend/internal/interfaces/http/response"
	"captn.backend/pkg/logger"
	"captn.backend/pkg/redis"
)

type AuthHandler struct {
	verifier   *identity.Verifier
	sessions   *redis.SessionStore
	sessionTTL time.Duration
}

func NewAuthHandler(verifier *identity.Verifier, sessions *redis.SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{verifier: verifier, sessions: sessions, sessionTTL: sessionTTL}
}

// Login exchanges an identity assertion for a session. The assertion is
// verified by the external provider; we only ever see the resulting email.
// POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	assertion := formOrQuery(c, "assertion")
	if assertion == "" {
		response.SetNotice(c, response.Notice{Type: "error", Msg: "Sign-in failed"})
		response.RedirectBack(c)
		return
	}

	email, err := h.verifier.Verify(c.Request.Context(), assertion)
	if err != nil {
		logger.Warn(c.Request.Context(), "assertion rejected", zap.Error(err))
		response.SetNotice(c, response.Notice{Type: "error", Msg: "Sign-in failed"})
		response.RedirectBack(c)
		return
	}

	sid := uuid.New().String()
	if err := h.sessions.CreateSession(c.Request.Context(), sid, &redis.SessionData{Email: email}, h.sessionTTL); err != nil {
		logger.Error(c.Request.Context(), "session create failed", zap.Error(err))
		response.SetNotice(c, response.Notice{Type: "error", Msg: "Sign-in failed"})
		response.RedirectBack(c)
		return
	}

	c.SetCookie(middleware.SessionCookie, sid, int(h.sessionTTL.Seconds()), "/", "", false, true)
	response.RedirectBack(c)
}

// Logout terminates the session and redirects back.
// GET /logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := middleware.GetSessionID(c); ok {
		if err := h.sessions.DeleteSession(c.Request.Context(), sid); err != nil {
			logger.Warn(c.Request.Context(), "session delete failed", zap.Error(err))
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.RedirectBack(c)
}
