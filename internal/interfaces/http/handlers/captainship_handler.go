package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "captn.backend/internal/domain/errors"
	"captn.backend/internal/interfaces/http/middleware"
	"captn.backend/internal/interfaces/http/response"
	"captn.backend/internal/usecases"
	"captn.backend/pkg/logger"
)

type CaptainshipHandler struct {
	schedule *usecases.ScheduleUsecase
}

func NewCaptainshipHandler(schedule *usecases.ScheduleUsecase) *CaptainshipHandler {
	return &CaptainshipHandler{schedule: schedule}
}

// Claim volunteers the signed-in user for a week, then redirects back with
// a flash notice either way.
// POST /captainships/
func (h *CaptainshipHandler) Claim(c *gin.Context) {
	email, _ := middleware.GetAuthEmail(c)
	week, year := weekYearParams(c)

	err := h.schedule.Claim(c.Request.Context(), week, year, email)

	notice := response.Notice{Type: "error"}
	switch {
	case err == nil:
		notice = response.Notice{Type: "success", Msg: "Thanks for volunteering!"}
	case errors.Is(err, domainerrors.ErrWeekTaken):
		notice.Msg = "There is already a Captain for this week"
	default:
		if !errors.Is(err, domainerrors.ErrInvalidInput) {
			logger.Error(c.Request.Context(), "claim failed", zap.Int("week", week), zap.Error(err))
		}
		notice.Msg = "There was an error when trying to save this date"
	}

	response.SetNotice(c, notice)
	response.RedirectBack(c)
}

// Release cancels the signed-in user's captainship for a week. Weeks owned
// by someone else, or with no captain at all, are silently left alone.
// DELETE /captainships/
func (h *CaptainshipHandler) Release(c *gin.Context) {
	email, _ := middleware.GetAuthEmail(c)
	week, year := weekYearParams(c)

	released, err := h.schedule.Release(c.Request.Context(), week, year, email)
	if err != nil && !errors.Is(err, domainerrors.ErrInvalidInput) {
		logger.Error(c.Request.Context(), "release failed", zap.Int("week", week), zap.Error(err))
	}
	if err == nil && released {
		response.SetNotice(c, response.Notice{Type: "success", Msg: "Cancelled your captainship!"})
	}

	response.RedirectBack(c)
}

func weekYearParams(c *gin.Context) (week, year int) {
	week, _ = strconv.Atoi(formOrQuery(c, "week"))
	if ys := formOrQuery(c, "year"); ys != "" {
		year, _ = strconv.Atoi(ys)
	}
	return week, year
}

func formOrQuery(c *gin.Context, name string) string {
	if v := c.PostForm(name); v != "" {
		return v
	}
	return c.Query(name)
}
