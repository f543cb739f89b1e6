package testutils

import "time"

// FixedTime is a clock frozen at Fixed until advanced.
type FixedTime struct {
	Fixed time.Time
}

func NewFixedTime() *FixedTime {
	return &FixedTime{Fixed: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}
}

func (ft *FixedTime) Now() time.Time {
	return ft.Fixed
}

// Advance moves the clock forward by d.
func (ft *FixedTime) Advance(d time.Duration) {
	ft.Fixed = ft.Fixed.Add(d)
}
