package tracker

// EventKind identifies what a mutation did.
type EventKind int

const (
	EntryAdded EventKind = iota
	EntryRemoved
	EntryUpdated
	GoalChanged
	DataReset
	EntriesImported
)

func (k EventKind) String() string {
	switch k {
	case EntryAdded:
		return "entry_added"
	case EntryRemoved:
		return "entry_removed"
	case EntryUpdated:
		return "entry_updated"
	case GoalChanged:
		return "goal_changed"
	case DataReset:
		return "data_reset"
	case EntriesImported:
		return "entries_imported"
	}
	return "unknown"
}

// Event is delivered to subscribers after a mutation has been applied and its
// save attempted.
type Event struct {
	Kind    EventKind
	EntryID string
	Amount  float64 // entry amount, or the new target for GoalChanged
	Count   int     // entries imported
}

type subscription struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every subsequent event, in registration order.
// The returned function removes the subscription.
func (t *Tracker) Subscribe(fn func(Event)) (cancel func()) {
	t.nextSub++
	id := t.nextSub
	t.subs = append(t.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

func (t *Tracker) emit(ev Event) {
	for _, s := range t.subs {
		s.fn(ev)
	}
}
