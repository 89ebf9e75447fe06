package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/usecase"
	"blog-analytics-service/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsUseCase interface {
	GetBlogViews(ctx context.Context, in usecase.BlogViewsInput) ([]domain.GroupedRow, error)
	GetTop(ctx context.Context, in usecase.TopInput) ([]domain.TopRow, error)
	GetPerformance(ctx context.Context, in usecase.PerformanceInput) ([]domain.PerformanceRow, error)
	ListViews(ctx context.Context, in usecase.ListViewsInput) (*domain.ViewPage, error)
}

type HandlerConfig struct {
	Pagination PaginationConfig
	// Debug adds the error text to 500 responses.
	Debug bool
	// QueryTimeout bounds each service call; zero means no bound.
	QueryTimeout time.Duration
	Logger       *zap.Logger
}

type AnalyticsHandler struct {
	uc         AnalyticsUseCase
	pagination PaginationConfig
	debug      bool
	timeout    time.Duration
	log        *zap.Logger
}

func NewAnalyticsHandler(uc AnalyticsUseCase, cfg HandlerConfig) *AnalyticsHandler {
	if cfg.Pagination.DefaultLimit <= 0 {
		cfg.Pagination.DefaultLimit = 100
	}
	if cfg.Pagination.MaxLimit <= 0 {
		cfg.Pagination.MaxLimit = 1000
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AnalyticsHandler{
		uc:         uc,
		pagination: cfg.Pagination,
		debug:      cfg.Debug,
		timeout:    cfg.QueryTimeout,
		log:        cfg.Logger,
	}
}

// RegisterRoutes mounts the analytics endpoints. Without strict routing the
// trailing slash is optional.
func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/analytics")
	g.Get("/blog-views/", h.GetBlogViews)
	g.Get("/top/", h.GetTop)
	g.Get("/performance/", h.GetPerformance)
	g.Get("/views/", h.ListViews)
}

func (h *AnalyticsHandler) requestLogger(c *fiber.Ctx) *zap.Logger {
	return logger.FromContext(c.UserContext(), h.log)
}

func (h *AnalyticsHandler) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.UserContext(), h.timeout)
	}
	return context.WithCancel(c.UserContext())
}

// GetBlogViews godoc
// @Summary Group blogs and views by country or user
// @Description Groups blog views by the viewer's country or by viewer. x is the group label, y the number of distinct blogs, z the number of views.
// @Tags Analytics
// @Produce json
// @Param object_type query string true "Group by" Enums(country, user)
// @Param range query string false "Time range, defaults to month" Enums(month, week, year)
// @Param filters query string false "JSON filter expression" example({"operator":"and","conditions":[{"field":"blog__title","operator":"contains","value":"test"}]})
// @Param limit query int false "Results per page (default 100, max 1000)"
// @Param offset query int false "Results offset"
// @Success 200 {object} BlogViewsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} BlogViewsNotFoundResponse
// @Failure 500 {object} InternalErrorResponse
// @Router /analytics/blog-views/ [get]
func (h *AnalyticsHandler) GetBlogViews(c *fiber.Ctx) error {
	objectType := c.Query("object_type", string(domain.GroupByCountry))
	dateRange := "month"
	if c.Context().QueryArgs().Has("range") {
		dateRange = c.Query("range")
	}
	filters := c.Query("filters")

	h.requestLogger(c).Info("blog views analytics called",
		zap.String("object_type", objectType),
		zap.String("range", dateRange),
		zap.String("filters", filters),
	)

	ctx, cancel := h.context(c)
	defer cancel()

	rows, err := h.uc.GetBlogViews(ctx, usecase.BlogViewsInput{
		ObjectType: objectType,
		Range:      dateRange,
		Filters:    filters,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			h.requestLogger(c).Info("no data found", zap.String("handler", "blog_views"), zap.Error(err))
			return c.Status(http.StatusNotFound).JSON(BlogViewsNotFoundResponse{
				ObjectType: objectType,
				Range:      dateRange,
				Data:       []RowResponse{},
				Message:    err.Error(),
			})
		}
		return h.writeError(c, "blog_views", err)
	}

	data := groupedRows(rows)
	p := parsePage(c, h.pagination)
	p.Count = len(data)
	start, end := p.window(p.Count)

	return c.Status(http.StatusOK).JSON(BlogViewsResponse{
		Count:      p.Count,
		Next:       p.next(c),
		Previous:   p.previous(c),
		Limit:      p.Limit,
		Offset:     p.Offset,
		ObjectType: objectType,
		Range:      dateRange,
		Data:       data[start:end],
	})
}

// GetTop godoc
// @Summary Top 10 users, countries or blogs by views
// @Description For user and country rankings y is the number of distinct blogs; for blogs the author username is returned instead. z is the number of views.
// @Tags Analytics
// @Produce json
// @Param top query string true "Rank by" Enums(user, country, blog)
// @Param range query string false "Time range" Enums(month, week, year)
// @Param filters query string false "JSON filter expression"
// @Success 200 {object} TopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} InternalErrorResponse
// @Router /analytics/top/ [get]
func (h *AnalyticsHandler) GetTop(c *fiber.Ctx) error {
	topType := c.Query("top", string(domain.TopByUser))
	dateRange := c.Query("range")
	filters := c.Query("filters")

	h.requestLogger(c).Info("top analytics called",
		zap.String("top", topType),
		zap.String("range", dateRange),
		zap.String("filters", filters),
	)

	ctx, cancel := h.context(c)
	defer cancel()

	rows, err := h.uc.GetTop(ctx, usecase.TopInput{
		Top:     topType,
		Range:   dateRange,
		Filters: filters,
	})
	if err != nil {
		return h.writeError(c, "top", err)
	}

	return c.Status(http.StatusOK).JSON(TopResponse{
		TopType: topType,
		Data:    topRows(rows),
	})
}

// GetPerformance godoc
// @Summary Time-series performance with period-over-period growth
// @Description x is "{period} ({n} blogs)", y the number of views in the period, z the growth in percent over the previous period.
// @Tags Analytics
// @Produce json
// @Param compare query string true "Bucket size" Enums(day, week, month, year)
// @Param user_id query int false "Blog author id"
// @Param filters query string false "JSON filter expression"
// @Success 200 {object} PerformanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} PerformanceNotFoundResponse
// @Failure 500 {object} InternalErrorResponse
// @Router /analytics/performance/ [get]
func (h *AnalyticsHandler) GetPerformance(c *fiber.Ctx) error {
	compare := c.Query("compare", string(domain.BucketMonth))
	filters := c.Query("filters")

	var userID *int64
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.writeError(c, "performance", domain.InvalidFilter("user_id must be an integer"))
		}
		userID = &id
	}

	h.requestLogger(c).Info("performance analytics called",
		zap.String("compare", compare),
		zap.Int64p("user_id", userID),
		zap.String("filters", filters),
	)

	ctx, cancel := h.context(c)
	defer cancel()

	rows, err := h.uc.GetPerformance(ctx, usecase.PerformanceInput{
		Compare: compare,
		UserID:  userID,
		Filters: filters,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			h.requestLogger(c).Info("no data found", zap.String("handler", "performance"), zap.Error(err))
			return c.Status(http.StatusNotFound).JSON(PerformanceNotFoundResponse{
				Compare: compare,
				UserID:  userID,
				Data:    []RowResponse{},
				Message: err.Error(),
			})
		}
		return h.writeError(c, "performance", err)
	}

	return c.Status(http.StatusOK).JSON(PerformanceResponse{
		Compare: compare,
		UserID:  userID,
		Data:    performanceRows(rows),
	})
}

type viewsQuery struct {
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Range    string `query:"range"`
	Blog     string `query:"blog" validate:"omitempty,number"`
	User     string `query:"user" validate:"omitempty,number"`
	Country  string `query:"country" validate:"omitempty,number"`
	Filters  string `query:"filters"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return v
}()

// ListViews godoc
// @Summary List raw blog views
// @Description Newest first. An unknown range or an invalid filter expression narrows nothing.
// @Tags Analytics
// @Produce json
// @Param date_from query string false "Earliest day (YYYY-MM-DD)"
// @Param date_to query string false "Latest day, inclusive (YYYY-MM-DD)"
// @Param range query string false "Time range" Enums(month, week, year)
// @Param blog query int false "Blog id"
// @Param user query int false "Viewer id"
// @Param country query int false "Country id"
// @Param filters query string false "JSON filter expression"
// @Param limit query int false "Results per page (default 100, max 1000)"
// @Param offset query int false "Results offset"
// @Success 200 {object} ViewsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} InternalErrorResponse
// @Router /analytics/views/ [get]
func (h *AnalyticsHandler) ListViews(c *fiber.Ctx) error {
	var q viewsQuery
	if err := c.QueryParser(&q); err != nil {
		return h.writeError(c, "views", domain.InvalidFilter("Invalid query parameters: %v", err))
	}
	if err := validate.Struct(q); err != nil {
		return h.writeError(c, "views", domain.InvalidFilter("%s", describeValidation(err)))
	}

	p := parsePage(c, h.pagination)
	in := usecase.ListViewsInput{
		Range:     q.Range,
		BlogID:    parseID(q.Blog),
		UserID:    parseID(q.User),
		CountryID: parseID(q.Country),
		Filters:   q.Filters,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
	if q.DateFrom != "" {
		from, _ := time.Parse(time.DateOnly, q.DateFrom)
		in.DateFrom = &from
	}
	if q.DateTo != "" {
		day, _ := time.Parse(time.DateOnly, q.DateTo)
		to := day.Add(24*time.Hour - time.Nanosecond)
		in.DateTo = &to
	}

	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.uc.ListViews(ctx, in)
	if err != nil {
		return h.writeError(c, "views", err)
	}

	p.Count = res.Total
	return c.Status(http.StatusOK).JSON(ViewsResponse{
		Count:    p.Count,
		Next:     p.next(c),
		Previous: p.previous(c),
		Limit:    p.Limit,
		Offset:   p.Offset,
		Data:     viewResponses(res.Views),
	})
}

func parseID(raw string) *int64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("Invalid value for %s: %v", fe.Field(), fe.Value()))
	}
	return strings.Join(msgs, "; ")
}
