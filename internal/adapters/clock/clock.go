package clock

import (
	"time"

	"github.com/renato0307/shiftclock/internal/ports"
)

// System reads the wall clock, truncated to whole seconds in UTC
type System struct{}

// Verify interface compliance at compile time
var _ ports.Clock = System{}

// Now implements ports.Clock
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
