package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/rcliao/water-tracker/internal/model"
)

// addAt records amount with the clock moved to the given local time, then
// restores the clock.
func addAt(t *testing.T, tr *Tracker, c *clock, when time.Time, amount float64) {
	t.Helper()
	saved := c.now
	c.now = when
	if _, err := tr.AddEntry(context.Background(), amount); err != nil {
		t.Fatalf("add %v at %v: %v", amount, when, err)
	}
	c.now = saved
}

func at(m time.Month, d, hh, mm int) time.Time {
	return time.Date(2026, m, d, hh, mm, 0, 0, testZone)
}

func TestStatsGrouping(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker(t)
	tr.SetGoal(ctx, 1000)

	addAt(t, tr, c, at(time.March, 8, 9, 0), 300)
	addAt(t, tr, c, at(time.March, 8, 18, 0), 500)
	addAt(t, tr, c, at(time.March, 9, 10, 0), 1000)

	if got := tr.AverageIntake(model.Week); got != 900 {
		t.Errorf("expected average 900, got %v", got)
	}
	if got := tr.AchievementRate(model.Week); got != 0.5 {
		t.Errorf("expected achievement 0.5, got %v", got)
	}
	best, ok := tr.BestDay(model.Week)
	if !ok {
		t.Fatal("expected a best day")
	}
	if !best.Day.Equal(at(time.March, 9, 0, 0)) || best.Total != 1000 {
		t.Errorf("expected March 9 with 1000, got %v with %v", best.Day, best.Total)
	}

	days := tr.Summary(model.Week)
	if len(days) != 2 {
		t.Fatalf("expected 2 populated days, got %d", len(days))
	}
	if days[0].Total != 800 || days[0].Count != 2 {
		t.Errorf("unexpected first day %+v", days[0])
	}
}

func TestStatsEmptyWindow(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	if got := tr.AverageIntake(model.Week); got != 0 {
		t.Errorf("expected 0 average, got %v", got)
	}
	if got := tr.AchievementRate(model.Month); got != 0 {
		t.Errorf("expected 0 rate, got %v", got)
	}
	if _, ok := tr.BestDay(model.Year); ok {
		t.Error("expected no best day")
	}

	r := tr.Stats(model.Week)
	if r.BestDay != nil || r.PopulatedDays != 0 || r.Entries != 0 {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestTimeframeWindows(t *testing.T) {
	tr, _, c := newTestTracker(t)

	// now is March 10 12:00
	addAt(t, tr, c, at(time.March, 3, 12, 0), 100)  // exactly 7 days back
	addAt(t, tr, c, at(time.March, 3, 11, 59), 200) // just outside the week
	addAt(t, tr, c, at(time.February, 10, 12, 0), 400)
	addAt(t, tr, c, at(time.February, 9, 12, 0), 800)
	addAt(t, tr, c, time.Date(2025, time.March, 10, 12, 0, 0, 0, testZone), 1600)
	addAt(t, tr, c, time.Date(2025, time.March, 9, 12, 0, 0, 0, testZone), 3200)
	addAt(t, tr, c, at(time.March, 10, 12, 1), 6400) // after now

	sum := func(entries []model.Entry) float64 {
		var s float64
		for _, e := range entries {
			s += e.Amount
		}
		return s
	}

	if got := sum(tr.FilteredEntries(model.Week)); got != 100 {
		t.Errorf("week: expected 100, got %v", got)
	}
	if got := sum(tr.FilteredEntries(model.Month)); got != 100+200+400 {
		t.Errorf("month: expected 700, got %v", got)
	}
	if got := sum(tr.FilteredEntries(model.Year)); got != 100+200+400+800+1600 {
		t.Errorf("year: expected 3100, got %v", got)
	}
}

func TestMonthWindowAtMonthEnd(t *testing.T) {
	tr, _, c := newTestTracker(t)
	c.Set(2026, time.March, 31, 12, 0)

	addAt(t, tr, c, at(time.March, 1, 9, 0), 300)
	addAt(t, tr, c, at(time.February, 28, 12, 0), 500)
	addAt(t, tr, c, at(time.February, 28, 11, 59), 700)

	got := tr.FilteredEntries(model.Month)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries since Feb 28 12:00, got %d", len(got))
	}
	for _, e := range got {
		if e.Amount == 700 {
			t.Errorf("entry before the window start was included")
		}
	}
}

func TestAchievementUsesCurrentGoal(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker(t)

	tr.SetGoal(ctx, 500)
	addAt(t, tr, c, at(time.March, 7, 9, 0), 600)
	addAt(t, tr, c, at(time.March, 8, 9, 0), 900)

	if got := tr.AchievementRate(model.Week); got != 1 {
		t.Errorf("expected 1 with goal 500, got %v", got)
	}
	tr.SetGoal(ctx, 800)
	if got := tr.AchievementRate(model.Week); got != 0.5 {
		t.Errorf("expected 0.5 after raising the goal, got %v", got)
	}
}

func TestBestDayTieKeepsEarliest(t *testing.T) {
	tr, _, c := newTestTracker(t)

	addAt(t, tr, c, at(time.March, 9, 9, 0), 700)
	addAt(t, tr, c, at(time.March, 6, 9, 0), 700)

	best, _ := tr.BestDay(model.Week)
	if !best.Day.Equal(at(time.March, 6, 0, 0)) {
		t.Errorf("expected March 6, got %v", best.Day)
	}
}

func TestStatsReport(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker(t)
	tr.SetGoal(ctx, 1000)

	addAt(t, tr, c, at(time.March, 8, 9, 0), 300)
	addAt(t, tr, c, at(time.March, 8, 18, 0), 500)
	addAt(t, tr, c, at(time.March, 9, 10, 0), 1000)

	r := tr.Stats(model.Week)
	if r.Entries != 3 || r.PopulatedDays != 2 {
		t.Errorf("expected 3 entries over 2 days, got %d over %d", r.Entries, r.PopulatedDays)
	}
	if r.AverageIntake != 900 || r.AchievementRate != 0.5 {
		t.Errorf("unexpected averages %+v", r)
	}
	if r.BestDay == nil || r.BestDay.Total != 1000 {
		t.Errorf("unexpected best day %+v", r.BestDay)
	}
	if r.Goal != 1000 || !r.To.Equal(c.now) {
		t.Errorf("unexpected window/goal %+v", r)
	}
}
