package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
)

// Truncate returns the start (UTC) of the bucket containing t. Weeks are ISO
// weeks starting on Monday.
func Truncate(t time.Time, b domain.Bucket) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	switch b {
	case domain.BucketWeek:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, time.UTC)
	case domain.BucketMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case domain.BucketYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// PeriodLabel formats a bucket start for display.
func PeriodLabel(start time.Time, b domain.Bucket) string {
	switch b {
	case domain.BucketWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("Week %02d, %d", week, year)
	case domain.BucketMonth:
		return start.Format("January 2006")
	case domain.BucketYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

// Growth is the percent change from prev to cur. A zero prev yields 0 when
// cur is zero too and a flat 100 otherwise.
func Growth(prev, cur int64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	g := float64(cur-prev) / float64(prev) * 100
	return math.Round(g*100) / 100
}

type series struct {
	starts []time.Time
	counts map[int64]int64
}

func bucketize(times []time.Time, b domain.Bucket) series {
	s := series{counts: map[int64]int64{}}
	for _, t := range times {
		start := Truncate(t, b)
		key := start.Unix()
		if _, ok := s.counts[key]; !ok {
			s.starts = append(s.starts, start)
		}
		s.counts[key]++
	}
	sort.Slice(s.starts, func(i, j int) bool { return s.starts[i].Before(s.starts[j]) })
	return s
}

// Performance buckets blog creations and views by b and walks the view
// buckets chronologically. A bucket with blogs created but no views does not
// appear. No views at all fails with domain.ErrDataNotFound.
func Performance(blogs []domain.BlogRecord, views []domain.ViewRecord, b domain.Bucket) ([]domain.PerformanceRow, error) {
	switch b {
	case domain.BucketDay, domain.BucketWeek, domain.BucketMonth, domain.BucketYear:
	default:
		return nil, domain.InvalidFilter("Invalid compare_type: %s. Must be 'day', 'week', 'month', or 'year'", b)
	}

	created := make([]time.Time, 0, len(blogs))
	for _, bl := range blogs {
		created = append(created, bl.CreatedAt)
	}
	viewed := make([]time.Time, 0, len(views))
	for _, v := range views {
		viewed = append(viewed, v.ViewedAt)
	}

	blogSeries := bucketize(created, b)
	viewSeries := bucketize(viewed, b)

	if len(viewSeries.starts) == 0 {
		return nil, domain.DataNotFound("No performance data found for the specified criteria")
	}

	rows := make([]domain.PerformanceRow, 0, len(viewSeries.starts))
	var prev int64
	for _, start := range viewSeries.starts {
		cur := viewSeries.counts[start.Unix()]
		rows = append(rows, domain.PerformanceRow{
			Bucket:       start,
			PeriodLabel:  PeriodLabel(start, b),
			BlogsCreated: blogSeries.counts[start.Unix()],
			Views:        cur,
			Growth:       Growth(prev, cur),
		})
		prev = cur
	}
	return rows, nil
}

// Label is the combined x label of a performance row.
func Label(r domain.PerformanceRow) string {
	return fmt.Sprintf("%s (%d blogs)", r.PeriodLabel, r.BlogsCreated)
}
