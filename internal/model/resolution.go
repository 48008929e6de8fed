package model

import (
	"fmt"
	"strings"
)

// Resolution is the time-step size of a series. Keep these values stable;
// they appear in config files and API payloads.
type Resolution string

const (
	Daily  Resolution = "daily"
	Hourly Resolution = "hourly"
)

const (
	DaysPerYear  = 365
	HoursPerDay  = 24
	HoursPerYear = DaysPerYear * HoursPerDay
)

// StepsPerYear is the annualization constant for the resolution.
func (r Resolution) StepsPerYear() float64 {
	switch r {
	case Hourly:
		return HoursPerYear
	default:
		return DaysPerYear
	}
}

func (r Resolution) Valid() bool {
	return r == Daily || r == Hourly
}

func (r Resolution) String() string { return string(r) }

func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "1d":
		return Daily, nil
	case "hourly", "hour", "1h":
		return Hourly, nil
	default:
		return "", fmt.Errorf("%w: unknown resolution %q", ErrInvalidInput, s)
	}
}
