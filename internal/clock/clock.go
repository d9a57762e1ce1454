package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so services and the ranking window can be tested
// against a fixed instant.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
