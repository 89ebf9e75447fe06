package usecase

import (
	"context"

	"blog-analytics-service/internal/analytics/core/aggregate"
	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/filter"
	"blog-analytics-service/internal/analytics/core/ports"

	"go.uber.org/zap"
)

type BlogViewsInput struct {
	ObjectType string // "country" | "user"
	Range      string // "", "week", "month", "year"
	Filters    string // JSON filter expression
}

// GetBlogViews groups views by country or viewer: Label, distinct blogs, views.
func (s *AnalyticsService) GetBlogViews(ctx context.Context, in BlogViewsInput) ([]domain.GroupedRow, error) {
	fields := []zap.Field{
		zap.String("object_type", in.ObjectType),
		zap.String("range", in.Range),
		zap.String("filters", in.Filters),
	}
	s.log.Info("get_blog_views_analytics called", fields...)

	key := domain.GroupKey(in.ObjectType)
	if key != domain.GroupByCountry && key != domain.GroupByUser {
		return nil, s.normalize("get_blog_views_analytics",
			domain.InvalidFilter("Invalid object_type: %s. Must be 'country' or 'user'", in.ObjectType), fields...)
	}

	since, err := s.resolveRange(in.Range)
	if err != nil {
		return nil, s.normalize("get_blog_views_analytics", err, fields...)
	}

	match, err := filter.Compile(in.Filters)
	if err != nil {
		return nil, s.normalize("get_blog_views_analytics", err, fields...)
	}

	views, err := s.reader.ListViews(ctx, ports.ViewQuery{Since: since, Match: match})
	if err != nil {
		return nil, s.normalize("get_blog_views_analytics", err, fields...)
	}

	rows, err := aggregate.GroupBy(views, key)
	if err != nil {
		return nil, s.normalize("get_blog_views_analytics", err, fields...)
	}

	s.log.Info("get_blog_views_analytics returning", append(fields, zap.Int("results", len(rows)))...)
	return rows, nil
}
