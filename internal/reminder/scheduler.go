package reminder

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Notifier delivers an alert to the user.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, a Alert) error

func (f NotifierFunc) Notify(ctx context.Context, a Alert) error { return f(ctx, a) }

// WriterNotifier prints alerts as one line each.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, a Alert) error {
	_, err := fmt.Fprintf(n.W, "%s  %s: %s\n", a.At.Format("Mon 15:04"), a.Title, a.Body)
	return err
}

// Scheduler runs the manager's reminders on a cron and hands each firing to a
// Notifier.
type Scheduler struct {
	mgr      *Manager
	notifier Notifier
	log      *logrus.Entry
	cron     *cron.Cron
	now      func() time.Time

	mu      sync.Mutex
	entries []cron.EntryID
}

// NewScheduler builds a stopped scheduler evaluating rules in loc.
func NewScheduler(mgr *Manager, notifier Notifier, loc *time.Location) *Scheduler {
	log := mgr.log.WithField("component", "scheduler")
	return &Scheduler{
		mgr:      mgr,
		notifier: notifier,
		log:      log,
		cron:     cron.New(cron.WithLocation(loc), cron.WithLogger(cron.PrintfLogger(log))),
		now:      time.Now,
	}
}

// Apply drops every scheduled rule and schedules the manager's current
// reminders. It returns the number of rules scheduled.
func (s *Scheduler) Apply() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	rules, err := Rules(s.mgr.List())
	if err != nil {
		return 0, err
	}
	for _, r := range rules {
		rule := r
		id, err := s.cron.AddFunc(rule.Spec, func() { s.fire(rule) })
		if err != nil {
			return len(s.entries), fmt.Errorf("schedule %s: %w", rule.ID, err)
		}
		s.entries = append(s.entries, id)
	}
	s.log.WithField("rules", len(rules)).Info("reminders scheduled")
	return len(rules), nil
}

// Scheduled reports the number of rules currently on the cron.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) fire(r Rule) {
	a := r.alert(s.now())
	if err := s.notifier.Notify(context.Background(), a); err != nil {
		s.log.WithError(err).WithField("rule", r.ID).Error("deliver reminder")
	}
}

// Start begins firing rules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron and waits for running alerts to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Watch reloads and reapplies the reminders whenever the database file at
// dbPath, or its -wal/-journal companion, is written. It returns when ctx is
// done. Edits made by another process against the same database are picked up
// this way.
func (s *Scheduler) Watch(ctx context.Context, dbPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir, base := filepath.Split(dbPath)
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.mgr.Reload(ctx); err != nil {
				s.log.WithError(err).Error("reload reminders")
				continue
			}
			if _, err := s.Apply(); err != nil {
				s.log.WithError(err).Error("apply reminders")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.WithError(err).Warn("watcher error")
		}
	}
}
