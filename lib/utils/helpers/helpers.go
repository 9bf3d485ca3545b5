package helpers

import (
	"context"
	"math"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// Round2 rounds half away from zero to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// AddDays shifts a calendar date by days, keeping the time of day.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func Ptr[T any](v T) *T {
	return &v
}

func StrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
