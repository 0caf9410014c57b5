package clock

import "time"

// Clock supplies the current time so day-boundary logic stays
// deterministic in tests. All timestamps are UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func New() Clock {
	return systemClock{}
}

// Truncate reduces a timestamp to midnight UTC for same-day comparison.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Fixed returns a clock pinned to t, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t.UTC()}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
