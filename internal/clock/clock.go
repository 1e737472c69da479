package clock

import "time"

// Clock abstracts wall-clock time so date-stamped records and debounce
// timing stay testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
