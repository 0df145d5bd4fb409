package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/config"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
	"github.com/Tiliavir/astreinte-tracker/internal/travel"
)

// env is what every command needs: where the data lives and how to
// evaluate it.
type env struct {
	base     string
	cfg      config.Config
	settings settings.Settings
	missing  error
	engine   compliance.Engine
}

func loadEnv() (env, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return env{}, ioError(err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("using default configuration", "err", err)
	}

	s, missing := cfg.Settings()
	if missing != nil {
		for _, line := range strings.Split(missing.Error(), "\n") {
			slog.Debug("settings fallback", "detail", line)
		}
		if !errors.Is(missing, settings.ErrConfigurationMissing) {
			return env{}, fmt.Errorf("invalid compliance settings: %w", missing)
		}
	}

	e := env{base: base, cfg: cfg, settings: s, missing: missing, engine: compliance.New(s)}
	if cfg.Travel.Path != "" {
		table, err := travel.Load(cfg.Travel.Path)
		if err != nil {
			slog.Warn("travel valorisation disabled", "err", err)
		} else {
			e.engine.Travel = loggingTravel{table}
		}
	}
	if cfg.Overtime != nil {
		e.engine.Overtime = *cfg.Overtime
	}
	return e, nil
}

// loggingTravel reports lookup failures the engine silently turns into
// zero hours.
type loggingTravel struct {
	table *travel.Table
}

func (l loggingTravel) TravelHours(commune string, date time.Time, start int) (float64, error) {
	h, err := l.table.TravelHours(commune, date, start)
	if err != nil {
		slog.Warn("travel lookup failed", "commune", commune, "date", timecalc.DateKey(date), "err", err)
	}
	return h, err
}

// today returns the current calendar day as a UTC midnight, the form
// every stored date key parses to.
func today() time.Time {
	d, _ := timecalc.ParseDate(timecalc.DateKey(time.Now()))
	return d
}

// parseDay accepts YYYY-MM-DD, "today", "yesterday" or "tomorrow".
func parseDay(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today", "aujourdhui":
		return today(), nil
	case "yesterday", "hier":
		return today().AddDate(0, 0, -1), nil
	case "tomorrow", "demain":
		return today().AddDate(0, 0, 1), nil
	}
	return timecalc.ParseDate(s)
}

func optionalDay(args []string) (time.Time, error) {
	if len(args) == 0 {
		return today(), nil
	}
	return parseDay(args[0])
}

// week loads and evaluates the week containing day.
func (e env) week(day time.Time) ([]model.ShiftEntry, compliance.WeekSummary, error) {
	entries, err := storage.LoadWeek(e.base, day)
	if err != nil {
		return nil, compliance.WeekSummary{}, ioError(err)
	}
	return entries, e.engine.Week(entries, day), nil
}

// findEntry resolves a full id or id prefix typed on the command line.
// An ambiguous prefix is a usage error; anything else is an IO error.
func (e env) findEntry(id string) (model.ShiftEntry, error) {
	entry, err := storage.FindEntry(e.base, id, today().AddDate(0, 0, 7), 0)
	if errors.Is(err, storage.ErrAmbiguousID) {
		return entry, err
	}
	if err != nil {
		return entry, ioError(err)
	}
	return entry, nil
}
