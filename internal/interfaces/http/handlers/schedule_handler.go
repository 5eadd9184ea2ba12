package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"captn.backend/internal/domain/entities"
	"captn.backend/internal/infrastructure/directory"
	"captn.backend/internal/interfaces/http/middleware"
	"captn.backend/internal/interfaces/http/response"
	"captn.backend/internal/usecases"
)

const isoDate = "2006-01-02"

// The rolling window on the front page: last week through eleven weeks out.
const (
	windowBack    = 1
	windowForward = 11
)

type ScheduleHandler struct {
	schedule *usecases.ScheduleUsecase
}

func NewScheduleHandler(schedule *usecases.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// Index renders the rolling 13-week schedule.
// GET /
func (h *ScheduleHandler) Index(c *gin.Context) {
	week := usecases.CurrentWeek(time.Now())
	h.renderRange(c, week-windowBack, week+windowForward, 0)
}

// Range renders an explicit week range. Invalid weeks or year make the
// route decline the request with the default not-found response.
// GET /:year/from/:start/to/:end/
func (h *ScheduleHandler) Range(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")

	if !entities.ValidWeek(start) || !entities.ValidWeek(end) {
		response.NotFound(c)
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		response.NotFound(c)
		return
	}

	startWeek, _ := strconv.Atoi(start)
	endWeek, _ := strconv.Atoi(end)
	h.renderRange(c, startWeek, endWeek, year)
}

// CurrentCaptain reports just this week's captain.
// GET /captain.json
func (h *ScheduleHandler) CurrentCaptain(c *gin.Context) {
	n := response.NegotiateJSON(c)

	captain, start, err := h.schedule.CurrentCaptain(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"captain": nil}
	if captain != nil {
		payload["captain"] = gin.H{
			"week": start.Format(isoDate),
			"hash": captain.EmailHash(),
		}
	}
	response.Write(c, n, payload)
}

func (h *ScheduleHandler) renderRange(c *gin.Context, startWeek, endWeek, year int) {
	n := response.Negotiate(c)

	// The directory is only consulted for the signed-in user on HTML pages.
	authEmail := ""
	if n.Format == response.FormatHTML {
		authEmail, _ = middleware.GetAuthEmail(c)
	}

	page, err := h.schedule.BuildSchedulePage(c.Request.Context(), startWeek, endWeek, year, authEmail)
	if err != nil {
		response.Error(c, err)
		return
	}

	if n.Format == response.FormatHTML {
		h.renderHTML(c, page, authEmail)
		return
	}

	items := weekItems(page.Slots)
	response.List(c, n, items, len(items))
}

type weekItem struct {
	Hash *string `json:"hash"`
	Week string  `json:"week"`
}

func weekItems(slots []usecases.WeekSlot) []weekItem {
	items := make([]weekItem, 0, len(slots))
	for _, s := range slots {
		item := weekItem{Week: s.Date.Format(isoDate)}
		if s.Captain != nil {
			hash := s.Captain.EmailHash()
			item.Hash = &hash
		}
		items = append(items, item)
	}
	return items
}

type slotView struct {
	Date     string
	Pretty   string
	Timeline string
	Week     int
	Year     int
	Captain  *entities.Captainship
	Owned    bool
}

type indexView struct {
	LoggedIn bool
	Email    string
	User     *directory.Profile
	Notice   *response.Notice
	Weeks    []slotView
}

func (h *ScheduleHandler) renderHTML(c *gin.Context, page *usecases.SchedulePage, authEmail string) {
	now := time.Now()

	weeks := make([]slotView, 0, len(page.Slots))
	for _, s := range page.Slots {
		isoYear, isoWeek := s.Date.ISOWeek()
		v := slotView{
			Date:     s.Date.Format(isoDate),
			Pretty:   prettyDate(s.Date),
			Timeline: timelineFor(s.Date, now),
			Week:     isoWeek,
			Year:     isoYear,
			Captain:  s.Captain,
		}
		if s.Captain != nil && authEmail != "" && s.Captain.Email == authEmail {
			v.Owned = true
		}
		weeks = append(weeks, v)
	}

	c.HTML(http.StatusOK, "index.html", indexView{
		LoggedIn: authEmail != "",
		Email:    authEmail,
		User:     page.User,
		Notice:   response.TakeNotice(c),
		Weeks:    weeks,
	})
}

// timelineFor classifies a slot for display: in the same ISO week-of-year
// as today it is "current", after today "future", otherwise "past".
func timelineFor(date, now time.Time) string {
	if usecases.CurrentWeek(date) == usecases.CurrentWeek(now) {
		return "current"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return "future"
	}
	return "past"
}

func prettyDate(date time.Time) string {
	return date.Format("Monday 2 January 2006")
}
