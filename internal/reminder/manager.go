// Package reminder stores hydration reminders and turns them into scheduled
// alerts.
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/logging"
	"github.com/rcliao/water-tracker/internal/model"
)

var (
	ErrNotFound    = errors.New("reminder not found")
	ErrInvalidTime = errors.New("invalid reminder time")
	ErrInvalidDay  = errors.New("invalid weekday (valid: 1 = Sunday .. 7 = Saturday)")
)

// Manager owns the reminder list persisted under kv.KeyReminders.
type Manager struct {
	kv        kv.Store
	log       *logrus.Entry
	entropy   io.Reader
	reminders []model.Reminder
}

// NewManager loads the stored reminders. Missing data starts an empty list;
// undecodable data is logged and also starts empty.
func NewManager(ctx context.Context, store kv.Store, log *logrus.Entry) (*Manager, error) {
	if log == nil {
		log = logging.Discard()
	}
	m := &Manager{
		kv:      store,
		log:     log.WithField("component", "reminder"),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload replaces the in-memory list with the stored one.
func (m *Manager) Reload(ctx context.Context) error {
	data, err := m.kv.Get(ctx, kv.KeyReminders)
	if errors.Is(err, kv.ErrNotFound) {
		m.reminders = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}

	var rs []model.Reminder
	if err := json.Unmarshal(data, &rs); err != nil {
		m.log.WithError(err).Warn("discarding undecodable reminders")
		m.reminders = nil
		return nil
	}
	m.reminders = rs
	return nil
}

// List returns a copy of the reminders in creation order.
func (m *Manager) List() []model.Reminder {
	out := make([]model.Reminder, len(m.reminders))
	for i, r := range m.reminders {
		r.Days = append([]int(nil), r.Days...)
		out[i] = r
	}
	return out
}

// Get returns the reminder with id.
func (m *Manager) Get(id string) (model.Reminder, error) {
	i := m.index(id)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.reminders[i], nil
}

// Add creates an enabled reminder at hour:minute on every day of the week.
func (m *Manager) Add(ctx context.Context, hour, minute int) (model.Reminder, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return model.Reminder{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	r := model.Reminder{
		ID:      ulid.MustNew(ulid.Now(), m.entropy).String(),
		Hour:    hour,
		Minute:  minute,
		Enabled: true,
		Days:    append([]int(nil), model.AllDays...),
	}
	m.reminders = append(m.reminders, r)
	if err := m.save(ctx); err != nil {
		return r, err
	}
	m.log.WithField("reminder_id", r.ID).WithField("time", r.FormattedTime()).Debug("reminder added")
	return r, nil
}

// Remove deletes the reminder with id and reports whether it existed.
func (m *Manager) Remove(ctx context.Context, id string) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.reminders = append(m.reminders[:i:i], m.reminders[i+1:]...)
	return true, m.save(ctx)
}

// Toggle flips the enabled flag of reminder id.
func (m *Manager) Toggle(ctx context.Context, id string) (model.Reminder, error) {
	i := m.index(id)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.reminders[i].Enabled = !m.reminders[i].Enabled
	return m.reminders[i], m.save(ctx)
}

// SetDays replaces the weekdays of reminder id. Duplicates are collapsed and
// the result is sorted.
func (m *Manager) SetDays(ctx context.Context, id string, days []int) (model.Reminder, error) {
	i := m.index(id)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	set := map[int]bool{}
	for _, d := range days {
		if d < 1 || d > 7 {
			return model.Reminder{}, fmt.Errorf("%w: %d", ErrInvalidDay, d)
		}
		set[d] = true
	}
	clean := make([]int, 0, len(set))
	for d := range set {
		clean = append(clean, d)
	}
	sort.Ints(clean)

	m.reminders[i].Days = clean
	return m.reminders[i], m.save(ctx)
}

func (m *Manager) index(id string) int {
	for i, r := range m.reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) save(ctx context.Context) error {
	rs := m.reminders
	if rs == nil {
		rs = []model.Reminder{}
	}
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}
	if err := m.kv.Put(ctx, kv.KeyReminders, data); err != nil {
		m.log.WithError(err).Error("save reminders")
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}
