package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bizilabs/streeek/internal/client/services"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// parseWeekdays parses a comma-separated day list like "mon,wed,fri".
func parseWeekdays(text string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(text, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		day, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown day %q (use sun,mon,tue,wed,thu,fri,sat)", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// parseClock parses a wall-clock time like "09:30".
func parseClock(text string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(text), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", text)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad hour in %q", text)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad minute in %q", text)
	}
	return hour, minute, nil
}

func formatReminderDays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}

// ListReminders prints the stored reminders sorted by label.
func (a *App) ListReminders(ctx context.Context) error {
	mapping := a.reminders.Current()
	if len(mapping) == 0 {
		printlnFn("No reminders.")
		return nil
	}

	labels := make([]string, 0, len(mapping))
	for label := range mapping {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		r := mapping[label]
		printlnFn(fmt.Sprintf("%s  %02d:%02d  %s", r.Label, r.Hour, r.Minute, formatReminderDays(r.Repeat)))
	}
	if !a.reminders.ExactAlarmsPermitted() {
		printlnFn("(exact alarms unavailable; firing times are best-effort)")
	}
	return nil
}

// promptReminderParams reads label, days, and time interactively.
func (a *App) promptReminderParams(label string) (*services.ReminderParams, error) {
	var err error
	if label == "" {
		label, err = GetSimpleText(a.reader, "Reminder label (at least 5 characters)", os.Stdout)
		if err != nil {
			return nil, err
		}
	}
	daysText, err := GetSimpleText(a.reader, "Repeat days (e.g. mon,wed,fri)", os.Stdout)
	if err != nil {
		return nil, err
	}
	days, err := parseWeekdays(daysText)
	if err != nil {
		return nil, err
	}
	clockText, err := GetSimpleText(a.reader, "Time of day (HH:MM)", os.Stdout)
	if err != nil {
		return nil, err
	}
	hour, minute, err := parseClock(clockText)
	if err != nil {
		return nil, err
	}

	return &services.ReminderParams{
		Label:  label,
		Repeat: days,
		Hour:   &hour,
		Minute: &minute,
	}, nil
}

// AddReminder creates a reminder interactively.
func (a *App) AddReminder(ctx context.Context) error {
	params, err := a.promptReminderParams("")
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	r, err := a.reminders.Create(ctx, *params)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Reminder %q set for %s at %02d:%02d.", r.Label, formatReminderDays(r.Repeat), r.Hour, r.Minute))
	return nil
}

// EditReminder updates an existing reminder interactively. The label keeps
// identifying the reminder; days and time are replaced.
func (a *App) EditReminder(ctx context.Context) error {
	label, err := GetSimpleText(a.reader, "Label of the reminder to edit", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	params, err := a.promptReminderParams(label)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	r, err := a.reminders.Update(ctx, label, *params)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Reminder %q now fires %s at %02d:%02d.", r.Label, formatReminderDays(r.Repeat), r.Hour, r.Minute))
	return nil
}

// DeleteReminder removes a reminder and its alarms.
func (a *App) DeleteReminder(ctx context.Context) error {
	label, err := GetSimpleText(a.reader, "Label of the reminder to delete", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if err := a.reminders.Delete(ctx, label); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Reminder %q deleted.", label))
	return nil
}
