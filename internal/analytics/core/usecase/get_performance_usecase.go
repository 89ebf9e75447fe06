package usecase

import (
	"context"

	"blog-analytics-service/internal/analytics/core/aggregate"
	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/filter"
	"blog-analytics-service/internal/analytics/core/ports"

	"go.uber.org/zap"
)

type PerformanceInput struct {
	Compare string // "day" | "week" | "month" | "year"
	UserID  *int64 // blog author; nil or 0 means all authors
	Filters string
}

// GetPerformance builds the per-period series of views, blogs created and
// view growth, optionally for a single author.
func (s *AnalyticsService) GetPerformance(ctx context.Context, in PerformanceInput) ([]domain.PerformanceRow, error) {
	fields := []zap.Field{
		zap.String("compare_type", in.Compare),
		zap.Int64p("user_id", in.UserID),
		zap.String("filters", in.Filters),
	}
	s.log.Info("get_performance_analytics called", fields...)

	bucket := domain.Bucket(in.Compare)
	switch bucket {
	case domain.BucketDay, domain.BucketWeek, domain.BucketMonth, domain.BucketYear:
	default:
		return nil, s.normalize("get_performance_analytics",
			domain.InvalidFilter("Invalid compare_type: %s. Must be 'day', 'week', 'month', or 'year'", in.Compare), fields...)
	}

	match, err := filter.Compile(in.Filters)
	if err != nil {
		return nil, s.normalize("get_performance_analytics", err, fields...)
	}

	var author *int64
	if in.UserID != nil && *in.UserID != 0 {
		author = in.UserID
	}

	blogs, err := s.reader.ListBlogs(ctx, ports.BlogQuery{AuthorID: author})
	if err != nil {
		return nil, s.normalize("get_performance_analytics", err, fields...)
	}

	views, err := s.reader.ListViews(ctx, ports.ViewQuery{AuthorID: author, Match: match})
	if err != nil {
		return nil, s.normalize("get_performance_analytics", err, fields...)
	}

	rows, err := aggregate.Performance(blogs, views, bucket)
	if err != nil {
		return nil, s.normalize("get_performance_analytics", err, fields...)
	}

	s.log.Info("get_performance_analytics returning", append(fields, zap.Int("periods", len(rows)))...)
	return rows, nil
}
