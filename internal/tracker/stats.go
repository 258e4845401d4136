package tracker

import (
	"sort"
	"time"

	"github.com/rcliao/water-tracker/internal/model"
)

// Report bundles the statistics shown for one timeframe.
type Report struct {
	Timeframe       model.Timeframe    `json:"timeframe"`
	From            time.Time          `json:"from"`
	To              time.Time          `json:"to"`
	Goal            float64            `json:"goal"`
	Entries         int                `json:"entries"`
	PopulatedDays   int                `json:"populated_days"`
	AverageIntake   float64            `json:"average_intake"`
	AchievementRate float64            `json:"achievement_rate"`
	BestDay         *model.DaySummary  `json:"best_day,omitempty"`
	Days            []model.DaySummary `json:"days"`
}

// FilteredEntries returns the entries whose timestamp lies in
// [now - window, now], in insertion order.
func (t *Tracker) FilteredEntries(tf model.Timeframe) []model.Entry {
	now := t.now()
	start := tf.Start(now)
	var out []model.Entry
	for _, e := range t.entries {
		if e.Timestamp.Before(start) || e.Timestamp.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Summary groups the timeframe's entries by local calendar day. Only days with
// at least one entry appear, oldest first.
func (t *Tracker) Summary(tf model.Timeframe) []model.DaySummary {
	return groupByDay(t.FilteredEntries(tf), t.now().Location())
}

func groupByDay(entries []model.Entry, loc *time.Location) []model.DaySummary {
	byDay := map[time.Time]*model.DaySummary{}
	var days []time.Time
	for _, e := range entries {
		d := startOfDay(e.Timestamp, loc)
		s, ok := byDay[d]
		if !ok {
			s = &model.DaySummary{Day: d}
			byDay[d] = s
			days = append(days, d)
		}
		s.Total += e.Amount
		s.Count++
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]model.DaySummary, 0, len(days))
	for _, d := range days {
		out = append(out, *byDay[d])
	}
	return out
}

// AverageIntake is the mean daily total over populated days. Days without
// entries do not count toward the divisor.
func (t *Tracker) AverageIntake(tf model.Timeframe) float64 {
	return average(t.Summary(tf))
}

func average(days []model.DaySummary) float64 {
	var sum float64
	for _, d := range days {
		sum += d.Total
	}
	return sum / float64(max(len(days), 1))
}

// AchievementRate is the fraction of populated days whose total met the
// current goal.
func (t *Tracker) AchievementRate(tf model.Timeframe) float64 {
	return achievement(t.Summary(tf), t.goal.Target)
}

func achievement(days []model.DaySummary, target float64) float64 {
	if len(days) == 0 {
		return 0
	}
	met := 0
	for _, d := range days {
		if d.Total >= target {
			met++
		}
	}
	return float64(met) / float64(len(days))
}

// BestDay returns the populated day with the highest total. The earliest day
// wins a tie. ok is false when the timeframe has no entries.
func (t *Tracker) BestDay(tf model.Timeframe) (best model.DaySummary, ok bool) {
	return bestDay(t.Summary(tf))
}

func bestDay(days []model.DaySummary) (model.DaySummary, bool) {
	if len(days) == 0 {
		return model.DaySummary{}, false
	}
	best := days[0]
	for _, d := range days[1:] {
		if d.Total > best.Total {
			best = d
		}
	}
	return best, true
}

// Stats computes every statistic for tf from a single pass over the entries.
func (t *Tracker) Stats(tf model.Timeframe) Report {
	now := t.now()
	entries := t.FilteredEntries(tf)
	days := groupByDay(entries, now.Location())

	r := Report{
		Timeframe:       tf,
		From:            tf.Start(now),
		To:              now,
		Goal:            t.goal.Target,
		Entries:         len(entries),
		PopulatedDays:   len(days),
		AverageIntake:   average(days),
		AchievementRate: achievement(days, t.goal.Target),
		Days:            days,
	}
	if b, ok := bestDay(days); ok {
		r.BestDay = &b
	}
	return r
}
