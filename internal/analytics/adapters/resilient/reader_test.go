package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/ports"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	err   error
	views []domain.ViewRecord
	blogs []domain.BlogRecord
	calls int
}

func (f *fakeReader) ListViews(ctx context.Context, q ports.ViewQuery) ([]domain.ViewRecord, error) {
	f.calls++
	return f.views, f.err
}

func (f *fakeReader) ListBlogs(ctx context.Context, q ports.BlogQuery) ([]domain.BlogRecord, error) {
	f.calls++
	return f.blogs, f.err
}

func testConfig(name string) Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Hour
	return cfg
}

func TestReader_PassesResultsThrough(t *testing.T) {
	next := &fakeReader{
		views: []domain.ViewRecord{{ID: 1}, {ID: 2}},
		blogs: []domain.BlogRecord{{ID: 9}},
	}
	r := NewReader(next, testConfig("pass-through"), nil)

	views, err := r.ListViews(context.Background(), ports.ViewQuery{})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	blogs, err := r.ListBlogs(context.Background(), ports.BlogQuery{})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, int64(9), blogs[0].ID)
}

func TestReader_EmptyResultIsNil(t *testing.T) {
	r := NewReader(&fakeReader{}, testConfig("empty"), nil)

	views, err := r.ListViews(context.Background(), ports.ViewQuery{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestReader_OpensAfterConsecutiveFailures(t *testing.T) {
	dbErr := errors.New("connection refused")
	next := &fakeReader{err: dbErr}
	r := NewReader(next, testConfig("trip"), nil)

	for i := 0; i < 2; i++ {
		_, err := r.ListViews(context.Background(), ports.ViewQuery{})
		require.ErrorIs(t, err, dbErr)
	}
	assert.Equal(t, gobreaker.StateOpen, r.State())

	_, err := r.ListBlogs(context.Background(), ports.BlogQuery{})
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls, "open breaker must not reach the database")
}

func TestReader_CancellationDoesNotTrip(t *testing.T) {
	next := &fakeReader{err: context.Canceled}
	r := NewReader(next, testConfig("cancel"), nil)

	for i := 0; i < 5; i++ {
		_, err := r.ListViews(context.Background(), ports.ViewQuery{})
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, r.State())
	assert.Equal(t, 5, next.calls)
}

func TestReader_TaxonomyErrorsDoNotTrip(t *testing.T) {
	next := &fakeReader{err: domain.InvalidFilter("bad")}
	r := NewReader(next, testConfig("taxonomy"), nil)

	for i := 0; i < 3; i++ {
		_, err := r.ListViews(context.Background(), ports.ViewQuery{})
		require.ErrorIs(t, err, domain.ErrInvalidFilter)
	}
	assert.Equal(t, gobreaker.StateClosed, r.State())
}

func TestReader_BreakerState(t *testing.T) {
	next := &fakeReader{err: errors.New("connection refused")}
	r := NewReader(next, testConfig("state"), nil)
	assert.Equal(t, "closed", r.BreakerState())

	for i := 0; i < 2; i++ {
		_, _ = r.ListViews(context.Background(), ports.ViewQuery{})
	}
	assert.Equal(t, "open", r.BreakerState())
}
