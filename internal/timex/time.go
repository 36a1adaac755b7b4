// Package timex converts between the timestamp representations used by the
// Streeek backend, the local cache, and domain models.
//
// Three named layouts are supported: the remote wire format (no offset,
// interpreted as UTC), the cache format (full ISO-8601 with zone designator),
// and derived local/UTC variants. Parsing is total: malformed input yields
// ok=false, never an error, and every call site supplies its own fallback.
package timex

import "time"

// Format names a timestamp layout understood by Parse and Render.
type Format string

const (
	// FormatRemote is the backend wire layout: no zone designator, the
	// instant is interpreted as UTC.
	FormatRemote Format = "2006-01-02T15:04:05"

	// FormatCache is the local cache layout: full ISO-8601 with zone.
	FormatCache Format = time.RFC3339
)

// Parse attempts to parse text against the named format. It returns ok=false
// on empty input, a layout mismatch, or any other parse failure. Timestamps
// in FormatRemote carry no zone and are anchored to UTC.
func Parse(text string, f Format) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	var t time.Time
	var err error
	switch f {
	case FormatRemote:
		t, err = time.ParseInLocation(string(f), text, time.UTC)
	default:
		t, err = time.Parse(string(f), text)
	}
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Render formats t using the named format. The zero time renders to the
// empty string so that absent timestamps round-trip as absent.
func Render(t time.Time, f Format) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(string(f))
}

// OrNow returns t when ok is true and the current system time otherwise.
// Mappers use it so that a corrupt timestamp degrades display freshness
// instead of aborting a sync.
func OrNow(t time.Time, ok bool) time.Time {
	if ok {
		return t
	}
	return time.Now()
}

// OrNowUTC is OrNow with the result anchored to UTC.
func OrNowUTC(t time.Time, ok bool) time.Time {
	return OrNow(t, ok).UTC()
}

// Local converts t to the device's local zone.
func Local(t time.Time) time.Time {
	return t.Local()
}
