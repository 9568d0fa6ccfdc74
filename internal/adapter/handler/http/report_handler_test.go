package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	handlers "github.com/crors-digital/calltrack/internal/adapter/handler/http"
	"github.com/crors-digital/calltrack/internal/domain/model"
	authmw "github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// fakeCallRepository serves canned samples, or fails every query.
type fakeCallRepository struct {
	samples []model.CallSample
	calls   []model.Call
	fail    bool
}

func (f *fakeCallRepository) Create(ctx context.Context, call *model.Call) error   { return nil }
func (f *fakeCallRepository) GetByID(ctx context.Context, id int64) (*model.Call, error) {
	return nil, nil
}
func (f *fakeCallRepository) ListRecent(ctx context.Context, limit int) ([]model.Call, error) {
	return f.calls, nil
}
func (f *fakeCallRepository) Samples(ctx context.Context) ([]model.CallSample, error) {
	if f.fail {
		return nil, assert.AnError
	}
	return f.samples, nil
}
func (f *fakeCallRepository) ListAll(ctx context.Context) ([]model.Call, error) {
	if f.fail {
		return nil, assert.AnError
	}
	return f.calls, nil
}
func (f *fakeCallRepository) Update(ctx context.Context, call *model.Call) error { return nil }
func (f *fakeCallRepository) Delete(ctx context.Context, id int64) error         { return nil }

type statsResponse struct {
	Labels  []string `json:"labels"`
	Counts  []int    `json:"counts"`
	Total   int      `json:"total"`
	Periodo string   `json:"periodo"`
}

func newStatsServer(t *testing.T, repo *fakeCallRepository) (*echo.Echo, *http.Cookie) {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	sessions := usecase.NewMemorySessionStore(time.Hour, zap.NewNop())
	t.Cleanup(sessions.Close)

	token, err := sessions.Create(context.Background(), usecase.Identity{
		UserID:   1,
		Username: "anamoraes",
		FullName: "Ana Beatriz Moraes",
		Role:     model.RoleSecretary,
	})
	require.NoError(t, err)

	e := echo.New()
	e.Use(authmw.SessionMiddleware(authmw.SessionConfig{
		Sessions:   sessions,
		CookieName: "session_token",
		Logger:     zap.NewNop(),
	}))

	handler := handlers.NewReportHandler(repo, loc, zap.NewNop())
	e.GET("/api/stats/por_duvida", handler.ByCategory)
	e.GET("/api/stats/por_dia", handler.ByDay)
	e.GET("/api/stats/comparativo_periodo", handler.ByPeriod)
	e.GET("/api/stats/pico_horarios", handler.ByHour)
	e.GET("/api/stats/por_atendente", handler.ByAttendant)

	return e, &http.Cookie{Name: "session_token", Value: token}
}

func getStats(t *testing.T, e *echo.Echo, cookie *http.Cookie, target string) (int, statsResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body statsResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func reportSamples() []model.CallSample {
	return []model.CallSample{
		{CreatedAt: time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC), Category: model.CategoryOptions[0], Attendant: "Ana Beatriz Moraes"},
		{CreatedAt: time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC), Category: model.CategoryOptions[0], Attendant: "Ana Beatriz Moraes"},
		{CreatedAt: time.Date(2025, 5, 11, 17, 0, 0, 0, time.UTC), Category: model.CategoryOptions[2], Attendant: ""},
	}
}

func TestReportHandler_ByCategory(t *testing.T) {
	e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	code, body := getStats(t, e, cookie, "/api/stats/por_duvida")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.CategoryOptions, body.Labels)
	assert.Equal(t, []int{2, 0, 1, 0, 0, 0, 0}, body.Counts)
	assert.Equal(t, 3, body.Total)
}

func TestReportHandler_ByCategory_Filtered(t *testing.T) {
	e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	code, body := getStats(t, e, cookie, "/api/stats/por_duvida?start=2025-05-11&end=2025-05-11")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, body.Total)
}

func TestReportHandler_ByDay(t *testing.T) {
	e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	code, body := getStats(t, e, cookie, "/api/stats/por_dia")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"2025-05-10", "2025-05-11"}, body.Labels)
	assert.Equal(t, []int{2, 1}, body.Counts)
}

func TestReportHandler_ByPeriod(t *testing.T) {
	e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	code, body := getStats(t, e, cookie, "/api/stats/comparativo_periodo?periodo=mes")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"2025-05"}, body.Labels)
	assert.Equal(t, []int{3}, body.Counts)
	assert.Equal(t, "mes", body.Periodo)
}

func TestReportHandler_ByHour(t *testing.T) {
	t.Run("buckets by local hour", func(t *testing.T) {
		e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

		code, body := getStats(t, e, cookie, "/api/stats/pico_horarios")

		assert.Equal(t, http.StatusOK, code)
		require.Len(t, body.Counts, 24)
		// 17:00 UTC is 14:00 local.
		assert.Equal(t, 2, body.Counts[14])
		assert.Equal(t, 3, body.Total)
	})

	t.Run("repository failure still yields the 24-slot structure", func(t *testing.T) {
		e, cookie := newStatsServer(t, &fakeCallRepository{fail: true})

		code, body := getStats(t, e, cookie, "/api/stats/pico_horarios")

		assert.Equal(t, http.StatusOK, code)
		require.Len(t, body.Labels, 24)
		assert.Equal(t, "00:00", body.Labels[0])
		assert.Equal(t, make([]int, 24), body.Counts)
		assert.Zero(t, body.Total)
	})
}

func TestReportHandler_ByAttendant(t *testing.T) {
	e, cookie := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	code, body := getStats(t, e, cookie, "/api/stats/por_atendente")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Ana Beatriz Moraes", usecase.AttendantUnknown}, body.Labels)
	assert.Equal(t, []int{2, 1}, body.Counts)
}

func TestReportHandler_Unauthenticated(t *testing.T) {
	e, _ := newStatsServer(t, &fakeCallRepository{samples: reportSamples()})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/por_duvida", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
