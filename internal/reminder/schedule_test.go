package reminder

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/model"
)

var zone = time.FixedZone("test", -5*60*60)

func TestCronSpecMapsSundayToZero(t *testing.T) {
	r := model.Reminder{Hour: 8, Minute: 5}
	assert.Equal(t, "5 8 * * 0", CronSpec(r, 1))
	assert.Equal(t, "5 8 * * 6", CronSpec(r, 7))
}

func TestRulesSkipDisabled(t *testing.T) {
	rules, err := Rules([]model.Reminder{
		{ID: "a", Hour: 9, Enabled: true, Days: []int{2, 4}},
		{ID: "b", Hour: 10, Enabled: false, Days: model.AllDays},
	})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "a-2", rules[0].ID)
	assert.Equal(t, "a-4", rules[1].ID)
}

func TestRulesRejectBadDay(t *testing.T) {
	_, err := Rules([]model.Reminder{{ID: "a", Enabled: true, Days: []int{8}}})
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestUpcoming(t *testing.T) {
	// Monday, March 9 2026, 07:00.
	from := time.Date(2026, time.March, 9, 7, 0, 0, 0, zone)
	reminders := []model.Reminder{
		{ID: "daily", Hour: 8, Minute: 30, Enabled: true, Days: model.AllDays},
		{ID: "sunday", Hour: 12, Minute: 0, Enabled: true, Days: []int{1}},
	}

	alerts, err := Upcoming(reminders, from, 8)
	require.NoError(t, err)
	require.Len(t, alerts, 8)

	assert.WithinDuration(t, time.Date(2026, time.March, 9, 8, 30, 0, 0, zone), alerts[0].At, 0)
	assert.Equal(t, "daily-2", alerts[0].ID)
	assert.WithinDuration(t, time.Date(2026, time.March, 14, 8, 30, 0, 0, zone), alerts[5].At, 0)
	assert.WithinDuration(t, time.Date(2026, time.March, 15, 8, 30, 0, 0, zone), alerts[6].At, 0)
	assert.Equal(t, "sunday-1", alerts[7].ID)
	assert.WithinDuration(t, time.Date(2026, time.March, 15, 12, 0, 0, 0, zone), alerts[7].At, 0)
	assert.Equal(t, AlertTitle, alerts[7].Title)

	for i := 1; i < len(alerts); i++ {
		assert.False(t, alerts[i].At.Before(alerts[i-1].At), "alerts out of order at %d", i)
	}
}

func TestUpcomingNothingEnabled(t *testing.T) {
	alerts, err := Upcoming([]model.Reminder{{ID: "x", Enabled: false, Days: model.AllDays}}, time.Now(), 3)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSchedulerApply(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	a, _ := m.Add(ctx, 8, 0)
	m.Add(ctx, 20, 0)
	m.SetDays(ctx, a.ID, []int{2, 3})

	s := NewScheduler(m, NotifierFunc(func(context.Context, Alert) error { return nil }), zone)
	n, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, 2+7, n)
	assert.Equal(t, 9, s.Scheduled())

	m.Toggle(ctx, a.ID)
	n, err = s.Apply()
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Len(t, s.cron.Entries(), 7)
}

func TestSchedulerFireNotifies(t *testing.T) {
	m, err := NewManager(context.Background(), kv.NewMemStore(), nil)
	require.NoError(t, err)

	var mu sync.Mutex
	var got []Alert
	s := NewScheduler(m, NotifierFunc(func(_ context.Context, a Alert) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, a)
		return nil
	}), zone)
	fixed := time.Date(2026, time.March, 9, 8, 0, 0, 0, zone)
	s.now = func() time.Time { return fixed }

	rules, err := Rules([]model.Reminder{{ID: "r", Hour: 8, Enabled: true, Days: []int{2}}})
	require.NoError(t, err)
	s.fire(rules[0])

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "r-2", got[0].ID)
	assert.Equal(t, fixed, got[0].At)
	assert.Equal(t, AlertBody, got[0].Body)
}

func TestWatchReappliesOnExternalWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	path := filepath.Join(t.TempDir(), "water.db")

	local, err := kv.NewSQLiteStore(path)
	require.NoError(t, err)
	defer local.Close()
	m, err := NewManager(ctx, local, nil)
	require.NoError(t, err)

	s := NewScheduler(m, NotifierFunc(func(context.Context, Alert) error { return nil }), zone)
	n, err := s.Apply()
	require.NoError(t, err)
	require.Zero(t, n)

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, path) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	other, err := kv.NewSQLiteStore(path)
	require.NoError(t, err)
	defer other.Close()
	data, err := json.Marshal([]model.Reminder{
		{ID: "morning", Hour: 9, Enabled: true, Days: []int{2, 4, 6}},
	})
	require.NoError(t, err)

	// The watcher may not be registered yet, so keep rewriting until it reacts.
	assert.Eventually(t, func() bool {
		return other.Put(ctx, kv.KeyReminders, data) == nil && s.Scheduled() == 3
	}, 5*time.Second, 50*time.Millisecond)
}
