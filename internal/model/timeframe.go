package model

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is a trailing statistics window ending at "now".
type Timeframe int

const (
	Week Timeframe = iota
	Month
	Year
)

// Timeframes lists every timeframe in display order.
var Timeframes = []Timeframe{Week, Month, Year}

func (tf Timeframe) String() string {
	switch tf {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return fmt.Sprintf("timeframe(%d)", int(tf))
}

// Start returns the inclusive lower bound of the window ending at now.
func (tf Timeframe) Start(now time.Time) time.Time {
	switch tf {
	case Week:
		return now.AddDate(0, 0, -7)
	case Month:
		return addMonths(now, -1)
	case Year:
		return addMonths(now, -12)
	}
	panic(fmt.Sprintf("model: unknown timeframe %d", int(tf)))
}

// addMonths shifts t by n calendar months, clamping the day to the last day
// of the target month (Mar 31 minus one month is Feb 28, not Mar 3).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	last := time.Date(ty, tm+1, 0, 0, 0, 0, 0, t.Location()).Day()
	hh, mm, ss := t.Clock()
	return time.Date(ty, tm, min(d, last), hh, mm, ss, t.Nanosecond(), t.Location())
}

// ParseTimeframe accepts "week", "month" or "year" (case-insensitive).
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "7d":
		return Week, nil
	case "month", "1m":
		return Month, nil
	case "year", "1y":
		return Year, nil
	}
	return 0, fmt.Errorf("invalid timeframe %q (valid: week, month, year)", s)
}

func (tf Timeframe) MarshalText() ([]byte, error) {
	return []byte(tf.String()), nil
}

func (tf *Timeframe) UnmarshalText(b []byte) error {
	v, err := ParseTimeframe(string(b))
	if err != nil {
		return err
	}
	*tf = v
	return nil
}
