// Package tracker implements the water intake store: the authoritative list of
// drink entries and the daily goal, with derived totals and statistics.
//
// Every mutation changes the in-memory state first and then persists the full
// state through a kv.Store. A failed write is logged and exposed through Err
// and ErrorMessage; it never rolls back the in-memory change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/logging"
	"github.com/rcliao/water-tracker/internal/model"
)

var (
	ErrSaveFailed    = errors.New("save failed")
	ErrLoadFailed    = errors.New("load failed")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidGoal   = errors.New("goal must be a non-negative number")
)

// Messages held as store state when persistence fails.
const (
	SaveFailedMessage = "Failed to save water intake data"
	LoadFailedMessage = "Failed to load water intake data"
)

// Tracker is the water intake store. It is not safe for concurrent use; all
// calls are expected from the single goroutine that handles user actions.
type Tracker struct {
	kv      kv.Store
	log     *logrus.Entry
	now     func() time.Time
	entropy io.Reader

	entries    []model.Entry
	goal       model.Goal
	todayTotal float64

	err    error
	errMsg string

	subs    []subscription
	nextSub int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now. The clock's location defines day boundaries.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for persistence errors and mutations.
func WithLogger(log *logrus.Entry) Option {
	return func(t *Tracker) { t.log = log }
}

// New builds a Tracker over store and loads any previously saved state.
// Missing or undecodable data leaves the tracker empty with the default goal;
// the load error is available through Err.
func New(ctx context.Context, store kv.Store, opts ...Option) *Tracker {
	t := &Tracker{
		kv:   store,
		now:  time.Now,
		goal: model.DefaultGoal(),
	}
	for _, o := range opts {
		o(t)
	}
	if t.log == nil {
		t.log = logging.Discard()
	}
	t.log = t.log.WithField("component", "tracker")
	t.entropy = ulid.Monotonic(rand.New(rand.NewSource(t.now().UnixNano())), 0)

	t.load(ctx)
	t.recompute()
	return t
}

func (t *Tracker) newID() string {
	return ulid.MustNew(ulid.Timestamp(t.now()), t.entropy).String()
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// AddEntry records a drink of amount ml at the current instant and returns its id.
func (t *Tracker) AddEntry(ctx context.Context, amount float64) (string, error) {
	if !validAmount(amount) {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	e := model.Entry{ID: t.newID(), Amount: amount, Timestamp: t.now()}
	t.entries = append(t.entries, e)
	t.save(ctx)
	t.recompute()

	t.log.WithField("entry_id", e.ID).WithField("amount", amount).Debug("entry added")
	t.emit(Event{Kind: EntryAdded, EntryID: e.ID, Amount: amount})
	return e.ID, nil
}

// RemoveEntry deletes the entry with id. A missing id is a no-op and reports false.
func (t *Tracker) RemoveEntry(ctx context.Context, id string) bool {
	for i, e := range t.entries {
		if e.ID == id {
			return t.removeAt(ctx, i)
		}
	}
	t.recompute()
	return false
}

// RemoveAt deletes the entry at position index in insertion order.
// Out-of-range indices are ignored.
func (t *Tracker) RemoveAt(ctx context.Context, index int) bool {
	if index < 0 || index >= len(t.entries) {
		t.recompute()
		return false
	}
	return t.removeAt(ctx, index)
}

func (t *Tracker) removeAt(ctx context.Context, i int) bool {
	e := t.entries[i]
	t.entries = append(t.entries[:i:i], t.entries[i+1:]...)
	t.save(ctx)
	t.recompute()

	t.log.WithField("entry_id", e.ID).Debug("entry removed")
	t.emit(Event{Kind: EntryRemoved, EntryID: e.ID, Amount: e.Amount})
	return true
}

// UpdateEntryAmount replaces the amount of entry id, keeping its timestamp.
// It reports false, with no error, when id is unknown.
func (t *Tracker) UpdateEntryAmount(ctx context.Context, id string, amount float64) (bool, error) {
	if !validAmount(amount) {
		return false, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	for i := range t.entries {
		if t.entries[i].ID != id {
			continue
		}
		t.entries[i].Amount = amount
		t.save(ctx)
		t.recompute()

		t.log.WithField("entry_id", id).WithField("amount", amount).Debug("entry updated")
		t.emit(Event{Kind: EntryUpdated, EntryID: id, Amount: amount})
		return true, nil
	}
	return false, nil
}

// SetGoal replaces the daily target. Zero is accepted; progress stays defined
// because the denominator is floored at 1 ml.
func (t *Tracker) SetGoal(ctx context.Context, target float64) error {
	if target < 0 || math.IsInf(target, 0) || math.IsNaN(target) {
		return fmt.Errorf("%w: %v", ErrInvalidGoal, target)
	}
	t.goal = model.Goal{Target: target}
	t.save(ctx)

	t.log.WithField("target", target).Debug("goal set")
	t.emit(Event{Kind: GoalChanged, Amount: target})
	return nil
}

// Reset clears every entry and restores the default goal.
func (t *Tracker) Reset(ctx context.Context) {
	t.entries = nil
	t.goal = model.DefaultGoal()
	t.save(ctx)
	t.recompute()

	t.log.Info("data reset")
	t.emit(Event{Kind: DataReset})
}

// Import appends entries from an export. Entries with a non-positive amount are
// skipped, missing or duplicate ids are replaced and zero timestamps become now.
// It returns the number of entries added.
func (t *Tracker) Import(ctx context.Context, entries []model.Entry) int {
	seen := make(map[string]bool, len(t.entries))
	for _, e := range t.entries {
		seen[e.ID] = true
	}

	added := 0
	for _, e := range entries {
		if !validAmount(e.Amount) {
			continue
		}
		if e.ID == "" || seen[e.ID] {
			e.ID = t.newID()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = t.now()
		}
		seen[e.ID] = true
		t.entries = append(t.entries, e)
		added++
	}
	if added == 0 {
		return 0
	}
	t.save(ctx)
	t.recompute()
	t.emit(Event{Kind: EntriesImported, Count: added})
	return added
}

// Entries returns a copy of all entries in insertion order.
func (t *Tracker) Entries() []model.Entry {
	out := make([]model.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry looks up an entry by id.
func (t *Tracker) Entry(id string) (model.Entry, bool) {
	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

// Goal returns the current daily goal.
func (t *Tracker) Goal() model.Goal {
	return t.goal
}

// TodayTotal returns the ml recorded on the current local day as of the last
// mutation or Refresh.
func (t *Tracker) TodayTotal() float64 {
	return t.todayTotal
}

// Refresh recomputes today's total against the clock. Call it when the view
// becomes active again so a day rollover is picked up.
func (t *Tracker) Refresh() float64 {
	t.recompute()
	return t.todayTotal
}

// TodayEntries returns the entries recorded on the current local day.
func (t *Tracker) TodayEntries() []model.Entry {
	now := t.now()
	var out []model.Entry
	for _, e := range t.entries {
		if sameDay(e.Timestamp, now) {
			out = append(out, e)
		}
	}
	return out
}

// DailyProgress is today's total over the goal, clamped to [0, 1].
func (t *Tracker) DailyProgress() float64 {
	return math.Min(t.todayTotal/math.Max(t.goal.Target, 1.0), 1.0)
}

// BonusPercent is the uncapped progress as a whole percentage.
func (t *Tracker) BonusPercent() int {
	return int(math.Round(t.todayTotal / math.Max(t.goal.Target, 1.0) * 100))
}

// Err returns the last persistence error, or nil.
func (t *Tracker) Err() error {
	return t.err
}

// ErrorMessage returns a human-readable form of Err, or "".
func (t *Tracker) ErrorMessage() string {
	return t.errMsg
}

// ClearError forgets the last persistence error.
func (t *Tracker) ClearError() {
	t.err = nil
	t.errMsg = ""
}

func (t *Tracker) recompute() {
	now := t.now()
	var total float64
	for _, e := range t.entries {
		if sameDay(e.Timestamp, now) {
			total += e.Amount
		}
	}
	t.todayTotal = total
}

func sameDay(ts, now time.Time) bool {
	y1, m1, d1 := ts.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(ts time.Time, loc *time.Location) time.Time {
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
