package model

import (
	"fmt"
	"time"
)

// CycleStartDay is the day of month on which a budget cycle begins.
const CycleStartDay = 16

// Period is a budget cycle running from the 16th of Month through the
// 15th of the following month.
type Period struct {
	Month int
	Year  int
}

// CurrentPeriod returns the cycle that contains now.
func CurrentPeriod(now time.Time) Period {
	month := int(now.Month())
	year := now.Year()

	if now.Day() >= CycleStartDay {
		return Period{Month: month, Year: year}
	}
	if month == 1 {
		return Period{Month: 12, Year: year - 1}
	}
	return Period{Month: month - 1, Year: year}
}

// Start returns the first day of the cycle.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), CycleStartDay, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the cycle (the 15th of the next month).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Label returns e.g. "June 2024".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

// RangeLabel returns e.g. "2024/6/16 – 2024/7/15".
func (p Period) RangeLabel() string {
	s, e := p.Start(), p.End()
	return fmt.Sprintf("%d/%d/%d – %d/%d/%d",
		s.Year(), int(s.Month()), s.Day(),
		e.Year(), int(e.Month()), e.Day())
}
