// Package settings holds the thresholds and regime parameters every
// compliance rule reads. Settings values are immutable snapshots: the
// engine only reads them.
package settings

import (
	"errors"
	"fmt"
)

// Documented defaults, applied whenever a value is absent from the
// configuration.
const (
	DefaultSeuilOrange     = 16.0
	DefaultSeuilRouge      = 8.0
	DefaultSeuilRECritique = 7.0
	DefaultPrimeRepas      = 16.50
	DefaultAlertesActives  = true
	DefaultRegime          = "astreinte"
	DefaultCommune         = ""
)

var ErrConfigurationMissing = errors.New("configuration missing")

// Settings parameterizes the compliance engine. Hour values are decimal
// hours.
type Settings struct {
	SeuilOrange     float64 `json:"seuil_orange"`
	SeuilRouge      float64 `json:"seuil_rouge"`
	SeuilRECritique float64 `json:"seuil_re_critique"`
	// SoldeRE is the rest-bank balance in hours; nil when not tracked.
	SoldeRE        *float64 `json:"solde_re"`
	PrimeRepas     float64  `json:"prime_repas"`
	AlertesActives bool     `json:"alertes_actives"`
	Regime         string   `json:"regime"`
	Commune        string   `json:"commune"`
}

// Partial is the on-disk form of Settings where every value may be
// absent.
type Partial struct {
	SeuilOrange     *float64 `json:"seuil_orange,omitempty"`
	SeuilRouge      *float64 `json:"seuil_rouge,omitempty"`
	SeuilRECritique *float64 `json:"seuil_re_critique,omitempty"`
	SoldeRE         *float64 `json:"solde_re,omitempty"`
	PrimeRepas      *float64 `json:"prime_repas,omitempty"`
	AlertesActives  *bool    `json:"alertes_actives,omitempty"`
	Regime          *string  `json:"regime,omitempty"`
	Commune         *string  `json:"commune,omitempty"`
}

// Defaults returns Settings filled with the documented defaults.
func Defaults() Settings {
	return Settings{
		SeuilOrange:     DefaultSeuilOrange,
		SeuilRouge:      DefaultSeuilRouge,
		SeuilRECritique: DefaultSeuilRECritique,
		PrimeRepas:      DefaultPrimeRepas,
		AlertesActives:  DefaultAlertesActives,
		Regime:          DefaultRegime,
		Commune:         DefaultCommune,
	}
}

// Resolve merges p over the defaults. The returned Settings is always
// usable; the error lists every absent required value, each wrapping
// ErrConfigurationMissing. SoldeRE and Commune are optional and never
// reported.
func Resolve(p Partial) (Settings, error) {
	s := Defaults()
	var missing []error
	miss := func(key string) {
		missing = append(missing, fmt.Errorf("%w: %s", ErrConfigurationMissing, key))
	}

	if p.SeuilOrange != nil {
		s.SeuilOrange = *p.SeuilOrange
	} else {
		miss("seuil_orange")
	}
	if p.SeuilRouge != nil {
		s.SeuilRouge = *p.SeuilRouge
	} else {
		miss("seuil_rouge")
	}
	if p.SeuilRECritique != nil {
		s.SeuilRECritique = *p.SeuilRECritique
	} else {
		miss("seuil_re_critique")
	}
	if p.PrimeRepas != nil {
		s.PrimeRepas = *p.PrimeRepas
	} else {
		miss("prime_repas")
	}
	if p.AlertesActives != nil {
		s.AlertesActives = *p.AlertesActives
	} else {
		miss("alertes_actives")
	}
	if p.Regime != nil && *p.Regime != "" {
		s.Regime = *p.Regime
	} else {
		miss("regime")
	}
	if p.Commune != nil {
		s.Commune = *p.Commune
	}
	if p.SoldeRE != nil {
		v := *p.SoldeRE
		s.SoldeRE = &v
	}

	if s.SeuilRouge > s.SeuilOrange {
		return s, fmt.Errorf("seuil_rouge (%.2f) must not exceed seuil_orange (%.2f)", s.SeuilRouge, s.SeuilOrange)
	}
	return s, errors.Join(missing...)
}
