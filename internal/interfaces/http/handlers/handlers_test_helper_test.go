package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"captn.backend/internal/domain/entities"
	domainerrors "captn.backend/internal/domain/errors"
	"captn.backend/internal/infrastructure/directory"
	"captn.backend/internal/interfaces/http/middleware"
	"captn.backend/internal/interfaces/http/response"
	"captn.backend/internal/usecases"
)

type memRepo struct {
	rows map[string]*entities.Captainship
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*entities.Captainship)}
}

func (m *memRepo) Create(ctx context.Context, c *entities.Captainship) error {
	key := c.StartedAt.Format(isoDate)
	if _, ok := m.rows[key]; ok {
		return domainerrors.ErrAlreadyExists
	}
	cp := *c
	m.rows[key] = &cp
	return nil
}

func (m *memRepo) GetByStartedAt(ctx context.Context, startedAt time.Time) (*entities.Captainship, error) {
	if c, ok := m.rows[startedAt.Format(isoDate)]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (m *memRepo) ListRange(ctx context.Context, from, to time.Time) ([]*entities.Captainship, error) {
	var out []*entities.Captainship
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if c, ok := m.rows[d.Format(isoDate)]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteOwned(ctx context.Context, startedAt time.Time, email string) (int64, error) {
	key := startedAt.Format(isoDate)
	if c, ok := m.rows[key]; ok && c.Email == email {
		delete(m.rows, key)
		return 1, nil
	}
	return 0, nil
}

func emptyDirectory(t *testing.T) *directory.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return directory.NewClient(srv.URL)
}

// newTestRouter wires the schedule routes the way cmd/server does, with an
// optional pre-authenticated email standing in for the session middleware.
func newTestRouter(t *testing.T, repo *memRepo, dir *directory.Client, authEmail string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.LoadHTMLGlob("../../../../templates/*.html")
	if authEmail != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.AuthEmailKey, authEmail)
			c.Next()
		})
	}

	u := usecases.NewScheduleUsecase(repo, dir)
	scheduleHandler := NewScheduleHandler(u)
	captainshipHandler := NewCaptainshipHandler(u)
	requireAuth := middleware.RequireAuth()

	r.GET("/", scheduleHandler.Index)
	r.GET("/captain.json", scheduleHandler.CurrentCaptain)
	r.GET("/:year/from/:start/to/:end/", scheduleHandler.Range)
	r.POST("/captainships/", requireAuth, captainshipHandler.Claim)
	r.DELETE("/captainships/", requireAuth, captainshipHandler.Release)
	return r
}

func flashNotice(t *testing.T, rec *httptest.ResponseRecorder) *response.Notice {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != "captn_flash" || ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		unescaped, err := url.QueryUnescape(ck.Value)
		require.NoError(t, err)
		raw, err := base64.URLEncoding.DecodeString(unescaped)
		require.NoError(t, err)
		var n response.Notice
		require.NoError(t, json.Unmarshal(raw, &n))
		return &n
	}
	return nil
}
