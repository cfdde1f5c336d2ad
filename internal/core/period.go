package core

import "time"

// Period selects one calendar month. Filtering is a closed interval from the
// first day 00:00 through the last day 23:59:59.999 of the month.
type Period struct {
	Year  int
	Month int // 1-12
}

func (p Period) Validate() error {
	if p.Year < 1 || p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns the number of calendar days in the month. Day 0 of the next
// month is the true last day, which handles 28/29/30/31-day months.
func (p Period) Days() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns the first instant of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant of the month.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Millisecond)
}

// Contains reports whether d falls inside the month. The zero Date represents
// a malformed date and never matches.
func (p Period) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == p.Year && int(d.Month()) == p.Month
}

// Previous returns the preceding calendar month.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}
