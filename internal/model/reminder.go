package model

import "fmt"

// Reminder is a repeating alert at a wall-clock time on selected weekdays.
// Days use 1 = Sunday through 7 = Saturday.
type Reminder struct {
	ID      string `json:"id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Enabled bool   `json:"isEnabled"`
	Days    []int  `json:"days"`
}

// AllDays is every weekday, Sunday first.
var AllDays = []int{1, 2, 3, 4, 5, 6, 7}

// FormattedTime renders the reminder time as HH:MM.
func (r Reminder) FormattedTime() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}
