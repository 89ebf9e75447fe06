package usecase

import (
	"context"
	"sort"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/filter"
	"blog-analytics-service/internal/analytics/core/ports"
	"blog-analytics-service/internal/analytics/core/timerange"

	"go.uber.org/zap"
)

type ListViewsInput struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Range    string // unknown values mean no bound

	BlogID    *int64
	UserID    *int64
	CountryID *int64

	Filters string // invalid filters are ignored

	Limit  int // <= 0 means everything
	Offset int
}

// ListViews pages through raw view records, newest first. Unlike the
// analytics operations it is lenient: a bad range or filter narrows nothing.
func (s *AnalyticsService) ListViews(ctx context.Context, in ListViewsInput) (*domain.ViewPage, error) {
	fields := []zap.Field{
		zap.String("range", in.Range),
		zap.String("filters", in.Filters),
		zap.Int("limit", in.Limit),
		zap.Int("offset", in.Offset),
	}
	s.log.Debug("list_views called", fields...)

	since := in.DateFrom
	if bound := timerange.Resolve(in.Range, s.now()); bound != nil && (since == nil || bound.After(*since)) {
		since = bound
	}

	views, err := s.reader.ListViews(ctx, ports.ViewQuery{
		Since:     since,
		Until:     in.DateTo,
		BlogID:    in.BlogID,
		UserID:    in.UserID,
		CountryID: in.CountryID,
		Match:     filter.CompileLenient(in.Filters),
	})
	if err != nil {
		return nil, s.normalize("list_views", err, fields...)
	}

	sort.SliceStable(views, func(i, j int) bool { return views[i].ViewedAt.After(views[j].ViewedAt) })

	page := &domain.ViewPage{Total: len(views)}
	start := min(max(in.Offset, 0), len(views))
	end := len(views)
	if in.Limit > 0 {
		end = min(start+in.Limit, len(views))
	}
	page.Views = views[start:end]

	return page, nil
}
