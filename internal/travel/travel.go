// Package travel values the journey to an on-call intervention from the
// commune the employee lives in.
package travel

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownCommune is returned when a commune is missing from the table.
var ErrUnknownCommune = errors.New("unknown commune")

const (
	nightStart = 21 * 60
	nightEnd   = 6 * 60
)

// Band is the rate class of an intervention start.
type Band string

const (
	WeekdayDay   Band = "semaine_jour"
	WeekdayNight Band = "semaine_nuit"
	SundayDay    Band = "dimanche_jour"
	SundayNight  Band = "dimanche_nuit"
)

var multipliers = map[Band]float64{
	WeekdayDay:   1.50,
	WeekdayNight: 2.00,
	SundayDay:    1.75,
	SundayNight:  2.25,
}

// Multiplier returns the rate applied to travel time in band b.
func (b Band) Multiplier() float64 {
	return multipliers[b]
}

// Commune is one row of the table.
type Commune struct {
	Name          string `yaml:"name"`
	TrajetMinutes int    `yaml:"trajet_minutes"`
}

// Table maps commune names to their one-way travel time.
type Table struct {
	Communes []Commune `yaml:"communes"`

	index map[string]Commune
}

// Valorisation is the valued travel of one intervention.
type Valorisation struct {
	Commune       string  `json:"commune"`
	Band          Band    `json:"band"`
	Multiplier    float64 `json:"multiplier"`
	TrajetMinutes int     `json:"trajetMinutes"`
	Hours         float64 `json:"hours"`
}

// Load reads a commune table from a YAML file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening commune table: %w", err)
	}
	defer f.Close()

	var t Table
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("parsing commune table %s: %w", path, err)
	}
	if err := t.build(); err != nil {
		return nil, fmt.Errorf("commune table %s: %w", path, err)
	}
	return &t, nil
}

// New builds a table from in-memory rows.
func New(communes []Commune) (*Table, error) {
	t := &Table{Communes: communes}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (t *Table) build() error {
	t.index = make(map[string]Commune, len(t.Communes))
	for _, c := range t.Communes {
		key := normalize(c.Name)
		if key == "" {
			return errors.New("commune with empty name")
		}
		if c.TrajetMinutes < 0 {
			return fmt.Errorf("commune %q: negative trajet_minutes", c.Name)
		}
		if _, dup := t.index[key]; dup {
			return fmt.Errorf("commune %q listed twice", c.Name)
		}
		t.index[key] = c
	}
	return nil
}

// Classify returns the band of an intervention started at startMinutes
// past midnight on date.
func Classify(date time.Time, startMinutes int) Band {
	night := startMinutes >= nightStart || startMinutes < nightEnd
	sunday := date.Weekday() == time.Sunday
	switch {
	case sunday && night:
		return SundayNight
	case sunday:
		return SundayDay
	case night:
		return WeekdayNight
	default:
		return WeekdayDay
	}
}

// Valorise values the travel from commune for an intervention started at
// startMinutes on date. Names match case-insensitively.
func (t *Table) Valorise(commune string, date time.Time, startMinutes int) (Valorisation, error) {
	c, ok := t.index[normalize(commune)]
	if !ok {
		return Valorisation{}, fmt.Errorf("%w: %q", ErrUnknownCommune, commune)
	}
	band := Classify(date, startMinutes)
	m := band.Multiplier()
	return Valorisation{
		Commune:       c.Name,
		Band:          band,
		Multiplier:    m,
		TrajetMinutes: c.TrajetMinutes,
		Hours:         float64(c.TrajetMinutes) / 60 * m,
	}, nil
}

// TravelHours returns only the valued hours.
func (t *Table) TravelHours(commune string, date time.Time, startMinutes int) (float64, error) {
	v, err := t.Valorise(commune, date, startMinutes)
	if err != nil {
		return 0, err
	}
	return v.Hours, nil
}

// Names lists the communes in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Communes))
	for i, c := range t.Communes {
		names[i] = c.Name
	}
	return names
}
