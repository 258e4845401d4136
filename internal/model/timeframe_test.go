package model

import (
	"testing"
	"time"
)

func TestTimeframeStartClampsMonthEnd(t *testing.T) {
	zone := time.FixedZone("test", 2*60*60)
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, zone)
	}

	tests := []struct {
		tf   Timeframe
		now  time.Time
		want time.Time
	}{
		{Week, date(2026, time.March, 10), date(2026, time.March, 3)},
		{Month, date(2026, time.March, 10), date(2026, time.February, 10)},
		{Month, date(2026, time.March, 31), date(2026, time.February, 28)},
		{Month, date(2028, time.March, 31), date(2028, time.February, 29)},
		{Month, date(2026, time.January, 31), date(2025, time.December, 31)},
		{Month, date(2026, time.May, 31), date(2026, time.April, 30)},
		{Year, date(2026, time.March, 10), date(2025, time.March, 10)},
		{Year, date(2028, time.February, 29), date(2027, time.February, 28)},
	}
	for _, tt := range tests {
		got := tt.tf.Start(tt.now)
		if !got.Equal(tt.want) {
			t.Errorf("%s from %s: expected %s, got %s", tt.tf, tt.now.Format("2006-01-02"), tt.want, got)
		}
		if got.Location() != zone {
			t.Errorf("%s: location changed to %v", tt.tf, got.Location())
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	for in, want := range map[string]Timeframe{"week": Week, " Month ": Month, "1y": Year} {
		got, err := ParseTimeframe(in)
		if err != nil || got != want {
			t.Errorf("ParseTimeframe(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTimeframe("decade"); err == nil {
		t.Error("expected error for unknown timeframe")
	}
}
