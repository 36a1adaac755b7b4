// Package alarms schedules wall-clock reminder alarms. A reminder with N
// repeat days owns N registrations, each identified by a key derived from
// (weekday, hour, minute) so re-arming an unchanged slot replaces rather
// than duplicates.
package alarms

import (
	"context"
	"fmt"
	"time"
)

// Key is the wake identity of one alarm registration.
type Key struct {
	Day    time.Weekday
	Hour   int
	Minute int
}

// Code folds the key into a stable integer: DHHMM with D the weekday
// number. Equal keys always produce equal codes.
func (k Key) Code() int {
	return int(k.Day)*10000 + k.Hour*100 + k.Minute
}

func (k Key) String() string {
	return fmt.Sprintf("%s %02d:%02d", k.Day, k.Hour, k.Minute)
}

// Scheduler is the OS alarm-scheduling collaborator. Register is idempotent
// per key; Cancel of an unregistered key is a no-op.
type Scheduler interface {
	Register(ctx context.Context, key Key) error
	Cancel(ctx context.Context, key Key) error

	// ExactSchedulingPermitted reports whether the platform currently
	// allows exact wake-time scheduling. When false, registrations are
	// still recorded but firing times are best-effort.
	ExactSchedulingPermitted() bool
}
