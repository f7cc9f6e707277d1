package repository

// Period represents a chart window selectable on the dashboard.
type Period string

const (
	P1D  Period = "1d"
	P5D  Period = "5d"
	P1Mo Period = "1mo"
	P3Mo Period = "3mo"
	P6Mo Period = "6mo"
	P1Y  Period = "1y"
	P5Y  Period = "5y"
	PYTD Period = "ytd"
	PMax Period = "max"
)

// AllPeriods lists supported periods in display order.
func AllPeriods() []Period {
	return []Period{P1D, P5D, P1Mo, P3Mo, P6Mo, P1Y, P5Y, PYTD, PMax}
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case P1D, P5D, P1Mo, P3Mo, P6Mo, P1Y, P5Y, PYTD, PMax:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the period shown when none is selected.
func DefaultPeriod() Period { return PYTD }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// Intraday reports whether the period is served at sub-daily resolution.
func (p Period) Intraday() bool {
	return p == P1D || p == P5D
}

// Interval returns the upstream bar resolution for the period.
func (p Period) Interval() string {
	switch p {
	case P1D:
		return "1m"
	case P5D:
		return "1h"
	default:
		return "1d"
	}
}

// Range returns the upstream range parameter for the period. Year-to-date
// is fetched as the full history and trimmed to January 1st by the caller.
func (p Period) Range() string {
	if p == PYTD {
		return "max"
	}
	return string(p)
}
