package msgraph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

// SourceOutlook marks entries imported from the calendar.
const SourceOutlook = "outlook"

// ErrEventTooLong is returned for events that cannot be expressed as one
// shift entry.
var ErrEventTooLong = errors.New("event longer than 24h")

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	Base     string
	From     time.Time
	To       time.Time
	DryRun   bool
	Timezone string
	Tag      string
	// SansIntervention imports slots as on-call availability.
	SansIntervention bool
	// Out receives one progress line per event; nil discards them.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			slog.Warn("unknown timezone, using UTC", "timezone", tz)
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// buildNote combines subject, location and body preview into one line.
func buildNote(event CalendarEvent) string {
	parts := []string{}
	for _, p := range []string{event.Subject, event.Location.DisplayName, event.BodyPreview} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, strings.Join(strings.Fields(p), " "))
		}
	}
	return strings.Join(parts, " – ")
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	switch {
	case event.IsCancelled, event.IsAllDay:
		return true
	case event.Sensitivity == "private", event.ShowAs == "free":
		return true
	case event.Start.DateTime == "" || event.End.DateTime == "":
		return true
	}
	return false
}

// MapEventToEntry converts a calendar event into a prepared shift entry
// dated on the day it starts. Events ending after midnight keep their
// clock end time.
func MapEventToEntry(event CalendarEvent, opts SyncOptions) (model.ShiftEntry, error) {
	start, err := parseGraphTime(event.Start.DateTime, opts.Timezone)
	if err != nil {
		return model.ShiftEntry{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, opts.Timezone)
	if err != nil {
		return model.ShiftEntry{}, fmt.Errorf("parsing end time: %w", err)
	}
	if loc := start.Location(); end.Location() != loc {
		end = end.In(loc)
	}
	d := end.Sub(start)
	if d <= 0 {
		return model.ShiftEntry{}, fmt.Errorf("event %q ends before it starts", event.Subject)
	}
	if d > 24*time.Hour {
		return model.ShiftEntry{}, fmt.Errorf("%w: %q lasts %s", ErrEventTooLong, event.Subject, d)
	}

	tags := []string{}
	if opts.Tag != "" {
		tags = append(tags, opts.Tag)
	}
	for _, c := range event.Categories {
		if !slices.Contains(tags, c) {
			tags = append(tags, c)
		}
	}

	entry := model.ShiftEntry{
		Date:                        timecalc.DateKey(start),
		StartTime:                   start.Format("15:04"),
		EndTime:                     end.Format("15:04"),
		IsAstreinteSansIntervention: opts.SansIntervention,
		Note:                        buildNote(event),
		NoteTags:                    tags,
		ExternalID:                  event.ID,
		Source:                      SourceOutlook,
	}
	return compliance.Prepare(entry)
}

// existingEntries loads what is stored around the sync window so moved
// events can be found.
func existingEntries(opts SyncOptions, day time.Time) ([]model.ShiftEntry, error) {
	if opts.From.IsZero() || opts.To.IsZero() {
		df, err := storage.LoadDay(opts.Base, day)
		return df.Entries, err
	}
	return storage.LoadRange(opts.Base, opts.From, opts.To)
}

func findByExternalID(entries []model.ShiftEntry, externalID string) (model.ShiftEntry, bool) {
	for _, e := range entries {
		if e.ExternalID == externalID {
			return e, true
		}
	}
	return model.ShiftEntry{}, false
}

// merge keeps the qualifiers the user set by hand on a previously
// imported entry and takes timing and note from the calendar.
func merge(found, fresh model.ShiftEntry) model.ShiftEntry {
	out := found
	out.Date = fresh.Date
	out.StartTime = fresh.StartTime
	out.EndTime = fresh.EndTime
	out.Note = fresh.Note
	return out
}

func unchanged(found, fresh model.ShiftEntry) bool {
	return found.Date == fresh.Date &&
		found.StartTime == fresh.StartTime &&
		found.EndTime == fresh.EndTime &&
		found.Note == fresh.Note
}

// SyncEvents stores events as shift entries. Running it twice with the
// same events changes nothing.
func SyncEvents(events []CalendarEvent, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	for _, event := range events {
		if shouldSkip(event) {
			slog.Debug("skipping event", "subject", event.Subject, "showAs", event.ShowAs)
			continue
		}

		entry, err := MapEventToEntry(event, opts)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		day, _ := timecalc.ParseDate(entry.Date)

		existing, err := existingEntries(opts, day)
		if err != nil {
			fmt.Fprintf(out, "  ! Error loading entries for %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		label := fmt.Sprintf("%s %s–%s %s", entry.Date, entry.StartTime, entry.EndTime, event.Subject)
		found, ok := findByExternalID(existing, event.ID)
		if !ok {
			if !opts.DryRun {
				if err := storage.UpdateEntry(opts.Base, entry); err != nil {
					fmt.Fprintf(out, "  ! Error saving %q: %v\n", event.Subject, err)
					result.Errors++
					continue
				}
			}
			fmt.Fprintf(out, "  ✓ Imported: %s\n", label)
			result.Imported++
			continue
		}

		if unchanged(found, entry) {
			fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", label)
			result.Skipped++
			continue
		}

		updated := merge(found, entry)
		if !opts.DryRun {
			if err := storage.UpdateEntry(opts.Base, updated); err != nil {
				fmt.Fprintf(out, "  ! Error updating %q: %v\n", event.Subject, err)
				result.Errors++
				continue
			}
			if found.Date != updated.Date {
				if err := storage.DeleteEntry(opts.Base, found); err != nil {
					fmt.Fprintf(out, "  ! Error moving %q: %v\n", event.Subject, err)
					result.Errors++
					continue
				}
			}
		}
		fmt.Fprintf(out, "  ↑ Updated:  %s\n", label)
		result.Updated++
	}

	return result, nil
}
