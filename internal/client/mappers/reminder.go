package mappers

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bizilabs/streeek/internal/client/models"
)

// ReminderToCache projects a reminder onto its cache row. Repeat days are
// stored sorted so the row is deterministic for a given reminder.
func ReminderToCache(r models.Reminder) models.ReminderCache {
	days := make([]int, 0, len(r.Repeat))
	for _, d := range r.Repeat {
		days = append(days, int(d))
	}
	sort.Ints(days)

	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}

	return models.ReminderCache{
		Label:  r.Label,
		Repeat: strings.Join(parts, ","),
		Hour:   r.Hour,
		Minute: r.Minute,
	}
}

// ReminderFromCache rebuilds a reminder from its cache row. Unparseable day
// entries are skipped rather than failing the whole row.
func ReminderFromCache(c models.ReminderCache) models.Reminder {
	var repeat []time.Weekday
	for _, part := range strings.Split(c.Repeat, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		repeat = append(repeat, time.Weekday(n))
	}
	return models.Reminder{
		Label:  c.Label,
		Repeat: repeat,
		Hour:   c.Hour,
		Minute: c.Minute,
	}
}
