// Package storage keeps shift entries in one JSON file per calendar day
// under the data directory, laid out as YYYY/MM/DD.json.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

// ErrEntryNotFound is returned when no day file holds the requested id.
var ErrEntryNotFound = errors.New("entry not found")

// ErrAmbiguousID is returned when an id prefix matches more than one entry.
var ErrAmbiguousID = errors.New("ambiguous entry id")

// DefaultLookback is how many days FindEntry searches when given zero.
const DefaultLookback = 62

// BaseDir returns the root data directory (~/.att).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".att"), nil
}

func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. A missing file yields an
// empty DayFile.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: timecalc.DateKey(t), Entries: []model.ShiftEntry{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	if df.Entries == nil {
		df.Entries = []model.ShiftEntry{}
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date. An empty day
// removes its file.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	if len(df.Entries) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing %s: %w", path, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	df.Date = timecalc.DateKey(t)
	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// UpdateEntry replaces the entry with the same id in its day file, or
// appends it. The day is taken from entry.Date.
func UpdateEntry(base string, entry model.ShiftEntry) error {
	day, err := timecalc.ParseDate(entry.Date)
	if err != nil {
		return err
	}
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, e := range df.Entries {
		if e.ID == entry.ID {
			df.Entries[i] = entry
			return SaveDay(base, day, df)
		}
	}
	df.Entries = append(df.Entries, entry)
	return SaveDay(base, day, df)
}

// FindEntry searches the day files from ref back over lookback days for
// an entry with the given id. An exact id wins anywhere in the window.
// Otherwise a prefix of at least four characters is accepted when exactly
// one entry in the window starts with it.
func FindEntry(base, id string, ref time.Time, lookback int) (model.ShiftEntry, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	var prefixed []model.ShiftEntry
	for i := 0; i < lookback; i++ {
		df, err := LoadDay(base, ref.AddDate(0, 0, -i))
		if err != nil {
			return model.ShiftEntry{}, err
		}
		for _, e := range df.Entries {
			if e.ID == id {
				return e, nil
			}
			if len(id) >= 4 && strings.HasPrefix(e.ID, id) {
				prefixed = append(prefixed, e)
			}
		}
	}
	switch len(prefixed) {
	case 0:
		return model.ShiftEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	case 1:
		return prefixed[0], nil
	}
	ids := make([]string, len(prefixed))
	for i, e := range prefixed {
		ids[i] = e.ID
	}
	return model.ShiftEntry{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousID, id, strings.Join(ids, ", "))
}

// DeleteEntry removes the entry with the given id from its day file.
func DeleteEntry(base string, entry model.ShiftEntry) error {
	day, err := timecalc.ParseDate(entry.Date)
	if err != nil {
		return err
	}
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, e := range df.Entries {
		if e.ID == entry.ID {
			df.Entries = append(df.Entries[:i], df.Entries[i+1:]...)
			return SaveDay(base, day, df)
		}
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, entry.ID)
}

// LoadRange loads all entries in [from, to] inclusive, by calendar day.
func LoadRange(base string, from, to time.Time) ([]model.ShiftEntry, error) {
	entries := []model.ShiftEntry{}
	from, to = timecalc.StartOfDay(from), timecalc.StartOfDay(to)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, df.Entries...)
	}
	return entries, nil
}

// LoadWeek loads the entries of the Sunday-to-Saturday week containing t.
func LoadWeek(base string, t time.Time) ([]model.ShiftEntry, error) {
	start := timecalc.WeekStart(t)
	return LoadRange(base, start, start.AddDate(0, 0, 6))
}
