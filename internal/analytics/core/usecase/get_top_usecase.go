package usecase

import (
	"context"

	"blog-analytics-service/internal/analytics/core/aggregate"
	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/filter"
	"blog-analytics-service/internal/analytics/core/ports"

	"go.uber.org/zap"
)

type TopInput struct {
	Top     string // "user" | "country" | "blog"
	Range   string
	Filters string
}

// GetTop returns the ten most viewed authors, countries or blogs. An empty
// ranking is a valid result.
func (s *AnalyticsService) GetTop(ctx context.Context, in TopInput) ([]domain.TopRow, error) {
	fields := []zap.Field{
		zap.String("top_type", in.Top),
		zap.String("range", in.Range),
		zap.String("filters", in.Filters),
	}
	s.log.Info("get_top_analytics called", fields...)

	kind := domain.TopKind(in.Top)
	switch kind {
	case domain.TopByUser, domain.TopByCountry, domain.TopByBlog:
	default:
		return nil, s.normalize("get_top_analytics",
			domain.InvalidFilter("Invalid top_type: %s. Must be 'user', 'country', or 'blog'", in.Top), fields...)
	}

	since, err := s.resolveRange(in.Range)
	if err != nil {
		return nil, s.normalize("get_top_analytics", err, fields...)
	}

	match, err := filter.Compile(in.Filters)
	if err != nil {
		return nil, s.normalize("get_top_analytics", err, fields...)
	}

	views, err := s.reader.ListViews(ctx, ports.ViewQuery{Since: since, Match: match})
	if err != nil {
		return nil, s.normalize("get_top_analytics", err, fields...)
	}

	rows, err := aggregate.Top(views, kind, aggregate.TopLimit)
	if err != nil {
		return nil, s.normalize("get_top_analytics", err, fields...)
	}

	s.log.Info("get_top_analytics returning", append(fields, zap.Int("results", len(rows)))...)
	return rows, nil
}
