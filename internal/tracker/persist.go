package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/model"
)

// EncodeEntries serializes entries in the stored format.
func EncodeEntries(entries []model.Entry) ([]byte, error) {
	if entries == nil {
		entries = []model.Entry{}
	}
	return json.Marshal(entries)
}

// DecodeEntries parses the stored format. Entries that could never have been
// accepted by the tracker (blank id, non-positive amount) are dropped.
func DecodeEntries(data []byte) ([]model.Entry, error) {
	var raw []model.Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := raw[:0]
	for _, e := range raw {
		if e.ID == "" || !validAmount(e.Amount) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// EncodeGoal serializes the goal in the stored format.
func EncodeGoal(g model.Goal) ([]byte, error) {
	return json.Marshal(g)
}

// DecodeGoal parses the stored goal. A null document or a missing target is
// an error rather than a zero goal.
func DecodeGoal(data []byte) (model.Goal, error) {
	var raw struct {
		Target *float64 `json:"target"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Goal{}, err
	}
	if raw.Target == nil {
		return model.Goal{}, errors.New("missing target")
	}
	if *raw.Target < 0 {
		return model.Goal{}, fmt.Errorf("negative target %v", *raw.Target)
	}
	return model.Goal{Target: *raw.Target}, nil
}

func (t *Tracker) load(ctx context.Context) {
	if data, err := t.kv.Get(ctx, kv.KeyWaterIntakes); err == nil {
		entries, err := DecodeEntries(data)
		if err != nil {
			t.loadFailed(kv.KeyWaterIntakes, err)
		} else {
			t.entries = entries
		}
	} else if !errors.Is(err, kv.ErrNotFound) {
		t.loadFailed(kv.KeyWaterIntakes, err)
	}

	if data, err := t.kv.Get(ctx, kv.KeyDailyGoal); err == nil {
		g, err := DecodeGoal(data)
		if err != nil {
			t.loadFailed(kv.KeyDailyGoal, err)
		} else {
			t.goal = g
		}
	} else if !errors.Is(err, kv.ErrNotFound) {
		t.loadFailed(kv.KeyDailyGoal, err)
	}
}

func (t *Tracker) loadFailed(key string, err error) {
	t.err = fmt.Errorf("%w: %s: %v", ErrLoadFailed, key, err)
	t.errMsg = LoadFailedMessage
	t.log.WithError(err).WithField("key", key).Error("load water data")
}

// save writes the entry list and the goal. The in-memory state is kept
// whatever the outcome.
func (t *Tracker) save(ctx context.Context) {
	if err := t.put(ctx, kv.KeyWaterIntakes, func() ([]byte, error) { return EncodeEntries(t.entries) }); err != nil {
		t.saveFailed(kv.KeyWaterIntakes, err)
		return
	}
	if err := t.put(ctx, kv.KeyDailyGoal, func() ([]byte, error) { return EncodeGoal(t.goal) }); err != nil {
		t.saveFailed(kv.KeyDailyGoal, err)
		return
	}
	t.ClearError()
}

func (t *Tracker) put(ctx context.Context, key string, encode func() ([]byte, error)) error {
	data, err := encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return t.kv.Put(ctx, key, data)
}

func (t *Tracker) saveFailed(key string, err error) {
	t.err = fmt.Errorf("%w: %s: %v", ErrSaveFailed, key, err)
	t.errMsg = SaveFailedMessage
	t.log.WithError(err).WithField("key", key).Error("save water data")
}
