package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rcliao/water-tracker/internal/model"
)

const (
	AlertTitle = "Water Reminder"
	AlertBody  = "It's time to drink some water!"
)

// Rule is one repeating alert: a reminder on a single weekday.
type Rule struct {
	ID         string // <reminderID>-<day>
	ReminderID string
	Weekday    int // 1 = Sunday
	Spec       string
	schedule   cron.Schedule
}

// Alert is a single firing of a rule.
type Alert struct {
	ID         string    `json:"id"`
	ReminderID string    `json:"reminder_id"`
	Weekday    int       `json:"weekday"`
	At         time.Time `json:"at"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
}

// CronSpec renders a reminder on day (1 = Sunday) as a standard five-field
// cron expression.
func CronSpec(r model.Reminder, day int) string {
	return fmt.Sprintf("%d %d * * %d", r.Minute, r.Hour, day-1)
}

// Rules expands every enabled reminder into one rule per selected weekday.
func Rules(reminders []model.Reminder) ([]Rule, error) {
	var rules []Rule
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		for _, day := range r.Days {
			if day < 1 || day > 7 {
				return nil, fmt.Errorf("reminder %s: %w: %d", r.ID, ErrInvalidDay, day)
			}
			spec := CronSpec(r, day)
			sched, err := cron.ParseStandard(spec)
			if err != nil {
				return nil, fmt.Errorf("reminder %s: parse %q: %w", r.ID, spec, err)
			}
			rules = append(rules, Rule{
				ID:         fmt.Sprintf("%s-%d", r.ID, day),
				ReminderID: r.ID,
				Weekday:    day,
				Spec:       spec,
				schedule:   sched,
			})
		}
	}
	return rules, nil
}

func (r Rule) alert(at time.Time) Alert {
	return Alert{
		ID:         r.ID,
		ReminderID: r.ReminderID,
		Weekday:    r.Weekday,
		At:         at,
		Title:      AlertTitle,
		Body:       AlertBody,
	}
}

// Upcoming returns the next n alerts strictly after from, earliest first.
// Times are computed in from's location.
func Upcoming(reminders []model.Reminder, from time.Time, n int) ([]Alert, error) {
	rules, err := Rules(reminders)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 || n <= 0 {
		return nil, nil
	}

	next := make([]time.Time, len(rules))
	for i, r := range rules {
		next[i] = r.schedule.Next(from)
	}

	alerts := make([]Alert, 0, n)
	for len(alerts) < n {
		best := 0
		for i := range next {
			if next[i].Before(next[best]) {
				best = i
			}
		}
		alerts = append(alerts, rules[best].alert(next[best]))
		next[best] = rules[best].schedule.Next(next[best])
	}
	return alerts, nil
}
