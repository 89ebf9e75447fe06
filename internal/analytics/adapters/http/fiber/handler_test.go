package fiber_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	httpadapter "blog-analytics-service/internal/analytics/adapters/http/fiber"
	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/usecase"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake usecase implementing the interface that handler depends on.
type fakeAnalyticsUseCase struct {
	GetBlogViewsFn   func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error)
	GetTopFn         func(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error)
	GetPerformanceFn func(ctx context.Context, in usecase.PerformanceInput) ([]domain.PerformanceRow, error)
	ListViewsFn      func(ctx context.Context, in usecase.ListViewsInput) (*domain.ViewPage, error)

	lastBlogViews   usecase.BlogViewsInput
	lastTop         usecase.TopInput
	lastPerformance usecase.PerformanceInput
	lastViews       usecase.ListViewsInput
	called          bool
}

func (f *fakeAnalyticsUseCase) GetBlogViews(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
	f.called = true
	f.lastBlogViews = in
	if f.GetBlogViewsFn != nil {
		return f.GetBlogViewsFn(ctx, in)
	}
	return nil, nil
}

func (f *fakeAnalyticsUseCase) GetTop(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error) {
	f.called = true
	f.lastTop = in
	if f.GetTopFn != nil {
		return f.GetTopFn(ctx, in)
	}
	return nil, nil
}

func (f *fakeAnalyticsUseCase) GetPerformance(ctx context.Context, in usecase.PerformanceInput) ([]domain.PerformanceRow, error) {
	f.called = true
	f.lastPerformance = in
	if f.GetPerformanceFn != nil {
		return f.GetPerformanceFn(ctx, in)
	}
	return nil, nil
}

func (f *fakeAnalyticsUseCase) ListViews(ctx context.Context, in usecase.ListViewsInput) (*domain.ViewPage, error) {
	f.called = true
	f.lastViews = in
	if f.ListViewsFn != nil {
		return f.ListViewsFn(ctx, in)
	}
	return &domain.ViewPage{}, nil
}

func setupApp(t *testing.T, uc httpadapter.AnalyticsUseCase, debug bool) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal})
	app.Use(httpadapter.RequestLogger(nil))
	h := httpadapter.NewAnalyticsHandler(uc, httpadapter.HandlerConfig{
		Pagination: httpadapter.PaginationConfig{DefaultLimit: 100, MaxLimit: 1000},
		Debug:      debug,
	})
	h.RegisterRoutes(app)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp, body
}

func countryRows() []domain.GroupedRow {
	return []domain.GroupedRow{
		{Label: "Germany", Blogs: 3, Views: 40},
		{Label: "France", Blogs: 2, Views: 25},
		{Label: "Spain", Blogs: 1, Views: 5},
	}
}

// ------------------------------------------------------------
// BLOG VIEWS
// ------------------------------------------------------------

func TestGetBlogViews_Success_DefaultsRangeToMonth(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return countryRows(), nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/blog-views/?object_type=country")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.lastBlogViews.Range != "month" || uc.lastBlogViews.ObjectType != "country" {
		t.Fatalf("unexpected usecase input: %+v", uc.lastBlogViews)
	}

	assert.Equal(t, float64(3), body["count"])
	assert.Nil(t, body["next"])
	assert.Nil(t, body["previous"])
	assert.Equal(t, "month", body["range"])
	assert.Equal(t, "country", body["object_type"])

	data := body["data"].([]any)
	require.Len(t, data, 3)
	first := data[0].(map[string]any)
	assert.Equal(t, "Germany", first["x"])
	assert.Equal(t, float64(3), first["y"])
	assert.Equal(t, float64(40), first["z"])
}

func TestGetBlogViews_EmptyRangeMeansAllTime(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return countryRows(), nil
		},
	}
	app := setupApp(t, uc, false)

	resp, _ := doGet(t, app, "/analytics/blog-views?object_type=user&range=")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", uc.lastBlogViews.Range)
	assert.Equal(t, "user", uc.lastBlogViews.ObjectType)
}

func TestGetBlogViews_Pagination(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return countryRows(), nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/blog-views/?object_type=country&limit=1&offset=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, float64(1), body["limit"])
	assert.Equal(t, float64(1), body["offset"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "France", data[0].(map[string]any)["x"])

	next, err := url.Parse(body["next"].(string))
	require.NoError(t, err)
	assert.Equal(t, "/analytics/blog-views/", next.Path)
	assert.Equal(t, "2", next.Query().Get("offset"))
	assert.Equal(t, "1", next.Query().Get("limit"))
	assert.Equal(t, "country", next.Query().Get("object_type"))

	prev, err := url.Parse(body["previous"].(string))
	require.NoError(t, err)
	assert.False(t, prev.Query().Has("offset"), "first page link drops offset")
}

func TestGetBlogViews_LimitCappedAndOffsetPastEnd(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return countryRows(), nil
		},
	}
	app := setupApp(t, uc, false)

	_, body := doGet(t, app, "/analytics/blog-views/?object_type=country&limit=5000&offset=10")
	assert.Equal(t, float64(1000), body["limit"])
	assert.Empty(t, body["data"])
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])

	_, body = doGet(t, app, "/analytics/blog-views/?object_type=country&limit=abc")
	assert.Equal(t, float64(100), body["limit"])
}

func TestGetBlogViews_InvalidObjectType(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return nil, domain.InvalidFilter("Invalid object_type: %s. Must be 'country' or 'user'", in.ObjectType)
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/blog-views/?object_type=blog")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	assert.Equal(t, "invalid_filter", body["code"])
	assert.Equal(t, "Invalid object_type: blog. Must be 'country' or 'user'", body["error"])
}

func TestGetBlogViews_InvalidRange(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return nil, domain.TimeRange("Invalid range: %s. Must be 'month', 'week', or 'year'", in.Range)
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/blog-views/?object_type=country&range=decade")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	assert.Equal(t, "invalid_time_range", body["code"])
}

func TestGetBlogViews_NotFoundEchoesQuery(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetBlogViewsFn: func(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error) {
			return nil, domain.DataNotFound("No data found for the specified criteria")
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/blog-views/?object_type=user&range=week")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
	assert.Equal(t, "user", body["object_type"])
	assert.Equal(t, "week", body["range"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, "No data found for the specified criteria", body["message"])
}

// ------------------------------------------------------------
// INTERNAL ERROR
// ------------------------------------------------------------

func TestInternalError_DetailOnlyInDebug(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetTopFn: func(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error) {
			return nil, domain.DatabaseQuery(errors.New("db failure"))
		},
	}

	resp, body := doGet(t, setupApp(t, uc, false), "/analytics/top/?top=user")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "internal_error", body["code"])
	assert.Contains(t, body, "detail")
	assert.Nil(t, body["detail"])

	_, body = doGet(t, setupApp(t, uc, true), "/analytics/top/?top=user")
	assert.Equal(t, "Database query error: db failure", body["detail"])
}

// ------------------------------------------------------------
// TOP
// ------------------------------------------------------------

func TestGetTop_Blog(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetTopFn: func(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error) {
			return []domain.TopRow{
				{Kind: domain.TopByBlog, Label: "Go Generics", Author: "writer", Views: 12},
			}, nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/top?top=blog&range=year")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "blog", body["top_type"])
	assert.Equal(t, usecase.TopInput{Top: "blog", Range: "year"}, uc.lastTop)

	row := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Go Generics", row["x"])
	assert.Equal(t, "writer", row["author"])
	assert.Equal(t, float64(12), row["z"])
	assert.NotContains(t, row, "y")
}

func TestGetTop_DefaultsAndEmpty(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetTopFn: func(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error) {
			return []domain.TopRow{}, nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/top/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", uc.lastTop.Top)
	assert.Equal(t, "", uc.lastTop.Range)
	assert.Equal(t, []any{}, body["data"])
}

// ------------------------------------------------------------
// PERFORMANCE
// ------------------------------------------------------------

func TestGetPerformance_Success(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetPerformanceFn: func(ctx context.Context, in usecase.PerformanceInput) ([]domain.PerformanceRow, error) {
			return []domain.PerformanceRow{
				{PeriodLabel: "January 2026", BlogsCreated: 2, Views: 10, Growth: 100},
				{PeriodLabel: "February 2026", BlogsCreated: 0, Views: 15, Growth: 50},
			}, nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/performance/?compare=month&user_id=7")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, uc.lastPerformance.UserID)
	assert.Equal(t, int64(7), *uc.lastPerformance.UserID)
	assert.Equal(t, "month", body["compare"])
	assert.Equal(t, float64(7), body["user_id"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	second := data[1].(map[string]any)
	assert.Equal(t, "February 2026 (0 blogs)", second["x"])
	assert.Equal(t, float64(15), second["y"])
	assert.Equal(t, float64(50), second["z"])
}

func TestGetPerformance_NonIntegerUserID(t *testing.T) {
	uc := &fakeAnalyticsUseCase{}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/performance/?compare=week&user_id=abc")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	assert.Equal(t, "user_id must be an integer", body["error"])
	assert.Equal(t, "invalid_filter", body["code"])
	if uc.called {
		t.Fatalf("usecase should not be called on bad user_id")
	}
}

func TestGetPerformance_NotFound(t *testing.T) {
	uc := &fakeAnalyticsUseCase{
		GetPerformanceFn: func(ctx context.Context, in usecase.PerformanceInput) ([]domain.PerformanceRow, error) {
			return nil, domain.DataNotFound("No performance data found for the specified criteria")
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/performance/?compare=day")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "day", body["compare"])
	assert.Nil(t, body["user_id"])
	assert.Equal(t, []any{}, body["data"])
}

// ------------------------------------------------------------
// VIEWS
// ------------------------------------------------------------

func TestListViews_ParsesParams(t *testing.T) {
	viewedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc := &fakeAnalyticsUseCase{
		ListViewsFn: func(ctx context.Context, in usecase.ListViewsInput) (*domain.ViewPage, error) {
			return &domain.ViewPage{
				Total: 3,
				Views: []domain.ViewRecord{{
					ID:       11,
					Blog:     domain.BlogRef{ID: 4, Title: "Go", Author: &domain.UserRef{ID: 1, Username: "writer"}},
					ViewedAt: viewedAt,
					Duration: 20,
				}},
			}, nil
		},
	}
	app := setupApp(t, uc, false)

	resp, body := doGet(t, app, "/analytics/views/?date_from=2026-02-01&date_to=2026-03-01&blog=4&country=9&limit=1&filters=%7Bbroken")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	in := uc.lastViews
	require.NotNil(t, in.DateFrom)
	require.NotNil(t, in.DateTo)
	assert.True(t, in.DateFrom.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, in.DateTo.After(viewedAt), "date_to covers the whole day")
	assert.True(t, in.DateTo.Before(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, in.BlogID)
	assert.Equal(t, int64(4), *in.BlogID)
	assert.Nil(t, in.UserID)
	assert.Equal(t, "{broken", in.Filters)
	assert.Equal(t, 1, in.Limit)

	assert.Equal(t, float64(3), body["count"])
	assert.NotNil(t, body["next"])
	view := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(11), view["id"])
	assert.Nil(t, view["user"])
	assert.Equal(t, "writer", view["blog"].(map[string]any)["author"].(map[string]any)["username"])
}

func TestListViews_BadParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"bad date", "date_from=01-02-2026", "Invalid value for date_from: 01-02-2026"},
		{"bad id", "blog=abc", "Invalid value for blog: abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeAnalyticsUseCase{}
			resp, body := doGet(t, setupApp(t, uc, false), "/analytics/views/?"+tt.query)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, body["error"])
			assert.False(t, uc.called)
		})
	}
}

// ------------------------------------------------------------
// MIDDLEWARE
// ------------------------------------------------------------

func TestRequestLogger_RequestID(t *testing.T) {
	app := setupApp(t, &fakeAnalyticsUseCase{}, false)

	req := httptest.NewRequest(http.MethodGet, "/analytics/top/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	req = httptest.NewRequest(http.MethodGet, "/analytics/top/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get("X-Request-ID"))
}

func TestRequestLogger_UnknownRoute(t *testing.T) {
	app := setupApp(t, &fakeAnalyticsUseCase{}, false)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
