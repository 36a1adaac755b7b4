package alarms

import (
	"context"
	"sync"
	"time"

	"github.com/bizilabs/streeek/internal/logging"
)

const week = 7 * 24 * time.Hour

// RingFunc is invoked when a registered alarm fires.
type RingFunc func(key Key)

// TimerScheduler implements Scheduler with in-process timers. Each
// registration arms a timer for the next occurrence of its weekday and
// time-of-day; on firing, the ring callback runs and the timer re-arms one
// week ahead.
type TimerScheduler struct {
	log   logging.Logger
	ring  RingFunc
	now   func() time.Time
	exact bool

	mu     sync.Mutex
	timers map[int]*time.Timer
}

// NewTimerScheduler builds a TimerScheduler. ring may be nil when the caller
// only needs registration bookkeeping. exact mirrors the platform's
// exact-alarm capability flag.
func NewTimerScheduler(log logging.Logger, ring RingFunc, exact bool) *TimerScheduler {
	return &TimerScheduler{
		log:    log,
		ring:   ring,
		now:    time.Now,
		exact:  exact,
		timers: map[int]*time.Timer{},
	}
}

// Register arms (or replaces) the timer for key.
func (s *TimerScheduler) Register(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := key.Code()
	if t, ok := s.timers[code]; ok {
		t.Stop()
	}

	d := nextOccurrence(s.now(), key)
	s.timers[code] = time.AfterFunc(d, func() { s.fire(key) })

	s.log.Info(ctx, "alarm registered", "key", key.String(), "in", d.String())
	return nil
}

// Cancel disarms the timer for key, if any.
func (s *TimerScheduler) Cancel(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := key.Code()
	if t, ok := s.timers[code]; ok {
		t.Stop()
		delete(s.timers, code)
		s.log.Info(ctx, "alarm cancelled", "key", key.String())
	}
	return nil
}

// ExactSchedulingPermitted reports the configured capability flag.
func (s *TimerScheduler) ExactSchedulingPermitted() bool {
	return s.exact
}

// Registered returns the codes of the currently armed alarms.
func (s *TimerScheduler) Registered() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	codes := make([]int, 0, len(s.timers))
	for code := range s.timers {
		codes = append(codes, code)
	}
	return codes
}

// Close disarms every timer.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, t := range s.timers {
		t.Stop()
		delete(s.timers, code)
	}
}

func (s *TimerScheduler) fire(key Key) {
	s.mu.Lock()
	// only re-arm if the registration is still live
	if _, ok := s.timers[key.Code()]; ok {
		s.timers[key.Code()] = time.AfterFunc(week, func() { s.fire(key) })
	} else {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if s.ring != nil {
		s.ring(key)
	}
}

// nextOccurrence returns the duration from now until the next time the key's
// weekday and time-of-day come around. A slot exactly at now fires a week
// later.
func nextOccurrence(now time.Time, key Key) time.Duration {
	days := (int(key.Day) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(), key.Hour, key.Minute, 0, 0, now.Location())
	candidate = candidate.AddDate(0, 0, days)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate.Sub(now)
}
