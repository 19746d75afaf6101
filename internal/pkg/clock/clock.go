package clock

import "time"

// Clock abstracts time.Now so transaction IDs and report windows stay
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
