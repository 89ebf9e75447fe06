package domain

import "time"

type GroupKey string

const (
	GroupByCountry GroupKey = "country"
	GroupByUser    GroupKey = "user"
)

type TopKind string

const (
	TopByUser    TopKind = "user"
	TopByCountry TopKind = "country"
	TopByBlog    TopKind = "blog"
)

type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// GroupedRow is one group of the blog-views analytics.
type GroupedRow struct {
	Label string
	Blogs int64 // distinct blogs viewed
	Views int64
}

// TopRow is one entry of a top-N ranking. Blogs is meaningless for TopByBlog;
// Author is only set for it.
type TopRow struct {
	Kind   TopKind
	Label  string
	Author string
	Blogs  int64
	Views  int64
}

type PerformanceRow struct {
	Bucket       time.Time
	PeriodLabel  string
	BlogsCreated int64
	Views        int64
	Growth       float64 // percent vs. previous bucket, 2 decimals
}

// ViewPage is a window of raw view records plus the total match count.
type ViewPage struct {
	Total int
	Views []ViewRecord
}
