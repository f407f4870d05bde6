package calendar

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// CopyDateWatcher is notified after copyDate changed from prev to next.
// It runs outside the context lock, so it may set fields again.
type CopyDateWatcher func(ctx context.Context, prev, next *time.Time) error

// ChosenDate is the "what day is the user looking at" context.
//
// Writers per field:
//   - date: UI layer, and the events store during a single-event reschedule
//   - copyDate: UI layer sets it, the events store clears it
//   - rescheduleCounter, rescheduledEventDate: UI layer only
type ChosenDate struct {
	mu sync.RWMutex

	date                 time.Time
	copyDate             *time.Time
	rescheduleCounter    int
	rescheduledEventDate time.Time

	copyDateWatchers []CopyDateWatcher
}

type DateSnapshot struct {
	Date                 time.Time  `json:"date"`
	CopyDate             *time.Time `json:"copyDate"`
	RescheduleCounter    int        `json:"rescheduleCounter"`
	RescheduledEventDate time.Time  `json:"rescheduledEventDate"`
}

func NewChosenDate(date time.Time) *ChosenDate {
	return &ChosenDate{
		date:                 date,
		rescheduledEventDate: date,
	}
}

func (c *ChosenDate) Snapshot() DateSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var copyDate *time.Time
	if c.copyDate != nil {
		cd := *c.copyDate
		copyDate = &cd
	}
	return DateSnapshot{
		Date:                 c.date,
		CopyDate:             copyDate,
		RescheduleCounter:    c.rescheduleCounter,
		RescheduledEventDate: c.rescheduledEventDate,
	}
}

func (c *ChosenDate) Date() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.date
}

func (c *ChosenDate) SetDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = t
}

func (c *ChosenDate) CopyDate() *time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.copyDate == nil {
		return nil
	}
	cd := *c.copyDate
	return &cd
}

func (c *ChosenDate) RescheduleCounter() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rescheduleCounter
}

func (c *ChosenDate) SetRescheduleCounter(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rescheduleCounter = days
}

func (c *ChosenDate) RescheduledEventDate() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rescheduledEventDate
}

func (c *ChosenDate) SetRescheduledEventDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rescheduledEventDate = t
}

// OnCopyDateChange registers a watcher fired on every copyDate transition.
func (c *ChosenDate) OnCopyDateChange(w CopyDateWatcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copyDateWatchers = append(c.copyDateWatchers, w)
}

// SetCopyDate stores t and notifies watchers if the value actually changed.
// Watcher errors are combined and returned.
func (c *ChosenDate) SetCopyDate(ctx context.Context, t *time.Time) error {
	c.mu.Lock()
	prev := c.copyDate
	if sameInstant(prev, t) {
		c.mu.Unlock()
		return nil
	}
	var next *time.Time
	if t != nil {
		nt := *t
		next = &nt
	}
	c.copyDate = next
	watchers := make([]CopyDateWatcher, len(c.copyDateWatchers))
	copy(watchers, c.copyDateWatchers)
	c.mu.Unlock()

	var err error
	for _, w := range watchers {
		err = multierr.Append(err, w(ctx, prev, next))
	}
	return err
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
