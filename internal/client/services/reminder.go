package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizilabs/streeek/internal/client/alarms"
	"github.com/bizilabs/streeek/internal/client/mappers"
	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/repositories/reminders"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/logging"
	"github.com/bizilabs/streeek/internal/streamx"
	"github.com/go-playground/validator/v10"
)

// ReminderParams carries the fields of a create or update request. Hour and
// Minute are pointers so an unset value is distinguishable from zero.
type ReminderParams struct {
	Label  string         `validate:"required,min=5"`
	Repeat []time.Weekday `validate:"required,min=1,dive,min=0,max=6"`
	Hour   *int           `validate:"required,min=0,max=23"`
	Minute *int           `validate:"required,min=0,max=59"`
}

// ReminderService manages weekly reminders: a label-keyed observable mapping
// persisted in the cache, with one alarm registration per (day, hour, minute)
// slot of every reminder.
//
// Contract:
//   - labels are identities; create rejects duplicates, update requires an
//     existing label.
//   - every accepted create or update leaves storage, the published mapping,
//     and the alarm registrations consistent with each other.
//   - updates re-register alarms by diff: slots no longer covered are
//     cancelled, new slots are registered.
type ReminderService interface {
	Subscribe() (<-chan map[string]models.Reminder, func())
	Current() map[string]models.Reminder
	Restore(ctx context.Context) error
	Create(ctx context.Context, p ReminderParams) (*models.Reminder, error)
	Update(ctx context.Context, label string, p ReminderParams) (*models.Reminder, error)
	Delete(ctx context.Context, label string) error
	CancelAll(ctx context.Context) error
	ExactAlarmsPermitted() bool
}

type reminderService struct {
	repo      reminders.Repository
	scheduler alarms.Scheduler
	validate  *validator.Validate
	log       logging.Logger
	stream    *streamx.Latest[map[string]models.Reminder]
}

// NewReminderService constructs a ReminderService backed by the given
// repository and alarm scheduler.
func NewReminderService(repo reminders.Repository, scheduler alarms.Scheduler, log logging.Logger) ReminderService {
	return &reminderService{
		repo:      repo,
		scheduler: scheduler,
		validate:  validator.New(),
		log:       log.With("service", "reminder"),
		stream:    streamx.NewLatest(map[string]models.Reminder{}),
	}
}

// Subscribe registers an observer of the label-keyed reminder mapping.
func (s *reminderService) Subscribe() (<-chan map[string]models.Reminder, func()) {
	return s.stream.Subscribe()
}

// Current returns the latest published mapping.
func (s *reminderService) Current() map[string]models.Reminder {
	return s.stream.Get()
}

// Restore loads persisted reminders, publishes the mapping, and arms an
// alarm for every slot.
func (s *reminderService) Restore(ctx context.Context) error {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore reminders: %w", err)
	}

	mapping := make(map[string]models.Reminder, len(rows))
	for _, row := range rows {
		r := mappers.ReminderFromCache(row)
		mapping[r.Label] = r
		for _, key := range reminderKeys(r) {
			if err := s.scheduler.Register(ctx, key); err != nil {
				s.log.Warn(ctx, "failed to arm alarm", "key", key.String(), "error", err)
			}
		}
	}
	s.stream.Publish(mapping)
	s.log.Info(ctx, "reminders restored", "count", len(mapping))
	return nil
}

// Create stores a new reminder and registers its alarms. The label must not
// already exist.
func (s *reminderService) Create(ctx context.Context, p ReminderParams) (*models.Reminder, error) {
	r, err := s.check(p)
	if err != nil {
		return nil, err
	}
	if _, exists := s.stream.Get()[r.Label]; exists {
		return nil, fmt.Errorf("reminder %q already exists: %w", r.Label, common.ErrValidation)
	}
	if err := s.apply(ctx, "", *r); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "reminder created", "label", r.Label, "days", len(r.Repeat))
	return r, nil
}

// Update replaces the reminder stored under label with the given parameters,
// which may carry a new label. Alarm registrations are reconciled by diff.
func (s *reminderService) Update(ctx context.Context, label string, p ReminderParams) (*models.Reminder, error) {
	r, err := s.check(p)
	if err != nil {
		return nil, err
	}
	current := s.stream.Get()
	if _, exists := current[label]; !exists {
		return nil, fmt.Errorf("reminder %q: %w", label, common.ErrNotFound)
	}
	if r.Label != label {
		if _, taken := current[r.Label]; taken {
			return nil, fmt.Errorf("reminder %q already exists: %w", r.Label, common.ErrValidation)
		}
	}
	if err := s.apply(ctx, label, *r); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "reminder updated", "label", r.Label)
	return r, nil
}

// Delete removes the reminder and cancels all of its alarm registrations.
func (s *reminderService) Delete(ctx context.Context, label string) error {
	current := s.stream.Get()
	existing, exists := current[label]
	if !exists {
		return fmt.Errorf("reminder %q: %w", label, common.ErrNotFound)
	}

	if err := s.repo.Delete(ctx, label); err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	for _, key := range reminderKeys(existing) {
		if err := s.scheduler.Cancel(ctx, key); err != nil {
			s.log.Warn(ctx, "failed to cancel alarm", "key", key.String(), "error", err)
		}
	}
	s.publishWithout(label)
	s.log.Info(ctx, "reminder deleted", "label", label)
	return nil
}

// CancelAll removes every reminder and its alarm registrations. Used when
// the account signs out.
func (s *reminderService) CancelAll(ctx context.Context) error {
	current := s.stream.Get()
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	for _, r := range current {
		for _, key := range reminderKeys(r) {
			if err := s.scheduler.Cancel(ctx, key); err != nil {
				s.log.Warn(ctx, "failed to cancel alarm", "key", key.String(), "error", err)
			}
		}
	}
	s.stream.Publish(map[string]models.Reminder{})
	s.log.Info(ctx, "reminders cleared", "count", len(current))
	return nil
}

// ExactAlarmsPermitted reports whether the scheduler can honor exact
// trigger times.
func (s *reminderService) ExactAlarmsPermitted() bool {
	return s.scheduler.ExactSchedulingPermitted()
}

// check validates and normalizes the parameters into a reminder value.
func (s *reminderService) check(p ReminderParams) (*models.Reminder, error) {
	p.Label = strings.TrimSpace(p.Label)
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	seen := make(map[time.Weekday]struct{}, len(p.Repeat))
	repeat := make([]time.Weekday, 0, len(p.Repeat))
	for _, day := range p.Repeat {
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		repeat = append(repeat, day)
	}

	return &models.Reminder{
		Label:  p.Label,
		Repeat: repeat,
		Hour:   *p.Hour,
		Minute: *p.Minute,
	}, nil
}

// apply persists the reminder, reconciles alarm registrations against the
// previous version stored under prevLabel (empty for a create), and
// republishes the mapping.
func (s *reminderService) apply(ctx context.Context, prevLabel string, r models.Reminder) error {
	current := s.stream.Get()

	if prevLabel != "" && prevLabel != r.Label {
		if err := s.repo.Delete(ctx, prevLabel); err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to replace reminder: %w", err)
		}
	}
	if err := s.repo.Upsert(ctx, mappers.ReminderToCache(r)); err != nil {
		return fmt.Errorf("failed to store reminder: %w", err)
	}

	next := make(map[alarms.Key]struct{}, len(r.Repeat))
	for _, key := range reminderKeys(r) {
		next[key] = struct{}{}
	}
	if prev, exists := current[prevLabel]; exists {
		for _, key := range reminderKeys(prev) {
			if _, keep := next[key]; keep {
				continue
			}
			if err := s.scheduler.Cancel(ctx, key); err != nil {
				s.log.Warn(ctx, "failed to cancel alarm", "key", key.String(), "error", err)
			}
		}
	}
	for key := range next {
		if err := s.scheduler.Register(ctx, key); err != nil {
			return fmt.Errorf("failed to register alarm %s: %w", key.String(), err)
		}
	}

	mapping := make(map[string]models.Reminder, len(current)+1)
	for label, existing := range current {
		if label == prevLabel {
			continue
		}
		mapping[label] = existing
	}
	mapping[r.Label] = r
	s.stream.Publish(mapping)
	return nil
}

func (s *reminderService) publishWithout(label string) {
	current := s.stream.Get()
	mapping := make(map[string]models.Reminder, len(current))
	for l, r := range current {
		if l == label {
			continue
		}
		mapping[l] = r
	}
	s.stream.Publish(mapping)
}

// reminderKeys expands a reminder into one alarm key per repeat day.
func reminderKeys(r models.Reminder) []alarms.Key {
	keys := make([]alarms.Key, 0, len(r.Repeat))
	for _, day := range r.Repeat {
		keys = append(keys, alarms.Key{Day: day, Hour: r.Hour, Minute: r.Minute})
	}
	return keys
}
