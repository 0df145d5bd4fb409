package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/Tiliavir/astreinte-tracker/internal/overtime"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
)

// Config is the root configuration for att, stored in ~/.att/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Outlook    OutlookConfig    `json:"outlook"`
	Compliance settings.Partial `json:"compliance"`
	Travel     TravelConfig     `json:"travel"`
	Overtime   *overtime.Tiered `json:"overtime,omitempty"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar sync settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// DefaultTag is added to the note tags of imported events.
	DefaultTag string `json:"default_tag"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Paris"). Empty = UTC.
	Timezone string `json:"timezone"`
}

// TravelConfig points at the commune travel table.
type TravelConfig struct {
	// Path is a YAML commune table. Relative paths resolve against the
	// config directory. Empty disables travel valorisation.
	Path string `json:"path"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID, usable
	// with the device code flow without a client secret.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultTag is the note tag put on imported calendar events.
	DefaultTag = "outlook"
)

func defaultConfig() Config {
	return Config{
		Outlook: OutlookConfig{
			TenantID:   DefaultTenantID,
			ClientID:   DefaultClientID,
			DefaultTag: DefaultTag,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// att configuration – ~/.att/config.json
//
// Compliance values left out fall back to their built-in default and are
// reported by "att config". Edit this file to match your contract.
{
  // ── Compliance thresholds ────────────────────────────────────────────────
  "compliance": {
    // Remaining weekly hours below which R1_SEUIL turns orange / rouge.
    "seuil_orange": 16,
    "seuil_rouge": 8,

    // Rest-bank (RE) balance in hours and the level at which RE fires.
    // Remove "solde_re" if you do not track the balance.
    "seuil_re_critique": 7,
    // "solde_re": 24,

    // Meal allowance in euros.
    "prime_repas": 16.50,

    // false disables the R1_SEUIL and RE warnings.
    "alertes_actives": true,

    "regime": "astreinte",

    // Home commune, looked up in the travel table below.
    "commune": ""
  },

  // ── Travel valorisation ──────────────────────────────────────────────────
  "travel": {
    // YAML file: communes: [{name: ..., trajet_minutes: ...}]
    "path": ""
  },

  // ── Overtime tiers (optional) ────────────────────────────────────────────
  // "overtime": {
  //   "base_hours": 35,
  //   "tiers": [{"up_to": 43, "multiplier": 1.25}, {"up_to": 0, "multiplier": 1.5}]
  // },

  // ── Microsoft Graph / Outlook calendar sync ──────────────────────────────
  "outlook": {
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID
    "tenant_id": "common",

    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Note tag put on imported events.
    "default_tag": "outlook",

    // IANA timezone for calendar event times, e.g. "Europe/Paris". Empty = UTC.
    "timezone": ""
  }
}
`

// FilePath returns the path to ~/.att/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".att", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.att/config.json, creating it on first run.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, writing the annotated template when
// the file does not exist. On error the returned Config still holds the
// defaults.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			slog.Warn("could not create config file", "path", path, "err", writeErr)
		}
		data = []byte(configTemplate)
	} else if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}
	if cfg.Outlook.DefaultTag == "" {
		cfg.Outlook.DefaultTag = DefaultTag
	}
	if cfg.Travel.Path != "" && !filepath.IsAbs(cfg.Travel.Path) {
		cfg.Travel.Path = filepath.Join(filepath.Dir(path), cfg.Travel.Path)
	}
	if cfg.Overtime != nil {
		if err := cfg.Overtime.Validate(); err != nil {
			slog.Warn("ignoring overtime table", "err", err)
			cfg.Overtime = nil
		}
	}
	return cfg, nil
}

// Settings resolves the compliance section. The Settings are usable even
// when the error reports missing keys.
func (c Config) Settings() (settings.Settings, error) {
	return settings.Resolve(c.Compliance)
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
