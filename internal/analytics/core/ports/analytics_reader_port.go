package ports

import (
	"context"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/filter"
)

type ViewQuery struct {
	Since    *time.Time // viewed_at >= Since
	Until    *time.Time // viewed_at <= Until
	AuthorID *int64     // blog author

	BlogID    *int64
	UserID    *int64 // viewer
	CountryID *int64

	Match filter.Predicate // nil means no filter
}

type BlogQuery struct {
	AuthorID *int64
}

// AnalyticsReaderPort is the storage side of the analytics core. Views come
// back already narrowed by every field of the query, Match included.
type AnalyticsReaderPort interface {
	ListViews(ctx context.Context, q ViewQuery) ([]domain.ViewRecord, error)
	ListBlogs(ctx context.Context, q BlogQuery) ([]domain.BlogRecord, error)
}
