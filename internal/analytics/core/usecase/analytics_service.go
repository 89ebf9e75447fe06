package usecase

import (
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/ports"
	"blog-analytics-service/internal/analytics/core/timerange"

	"go.uber.org/zap"
)

// AnalyticsService validates analytics requests, narrows the view set through
// the reader and hands it to the aggregation engine.
type AnalyticsService struct {
	reader ports.AnalyticsReaderPort
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*AnalyticsService)

// WithClock replaces time.Now, which anchors the date ranges.
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) { s.now = now }
}

func NewAnalyticsService(reader ports.AnalyticsReaderPort, log *zap.Logger, opts ...Option) *AnalyticsService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &AnalyticsService{reader: reader, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveRange validates a present range and turns it into a lower bound.
func (s *AnalyticsService) resolveRange(name string) (*time.Time, error) {
	if name == "" {
		return nil, nil
	}
	if !timerange.Valid(name) {
		return nil, domain.TimeRange("Invalid range: %s. Must be 'month', 'week', or 'year'", name)
	}
	return timerange.Resolve(name, s.now()), nil
}

// normalize passes taxonomy errors through and turns anything else into a
// database query error.
func (s *AnalyticsService) normalize(op string, err error, fields ...zap.Field) error {
	if domain.IsKnown(err) {
		s.log.Info(op+" rejected", append(fields, zap.String("reason", err.Error()))...)
		return err
	}
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return domain.DatabaseQuery(err)
}
