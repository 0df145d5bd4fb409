package cmd

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings and the keys using defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if path, err := config.FilePath(); err == nil {
		fmt.Fprintf(out, "Config file: %s\n", path)
	}
	fmt.Fprintf(out, "Data dir:    %s\n\n", e.base)

	data, err := json.MarshalIndent(e.settings, "", "  ")
	if err != nil {
		return ioError(err)
	}
	fmt.Fprintln(out, string(data))

	if e.engine.Travel != nil {
		fmt.Fprintf(out, "\nTravel table: %s\n", e.cfg.Travel.Path)
	}
	if e.cfg.Overtime != nil {
		fmt.Fprintf(out, "Overtime base: %gh, %d tier(s)\n", e.cfg.Overtime.BaseHours, len(e.cfg.Overtime.Tiers))
	}

	if keys := missingKeys(e.missing); len(keys) > 0 {
		fmt.Fprintf(out, "\nUsing built-in defaults for: %s\n", strings.Join(keys, ", "))
	}
	return nil
}

// missingKeys extracts the key names from the joined errors returned by
// settings.Resolve.
func missingKeys(err error) []string {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	keys := []string{}
	for _, e := range errs {
		if _, key, ok := strings.Cut(e.Error(), ": "); ok && errors.Unwrap(e) != nil {
			keys = append(keys, key)
		}
	}
	return keys
}
