package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/msgraph"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var (
	outlookSyncFrom             string
	outlookSyncTo               string
	outlookSyncDate             string
	outlookSyncDryRun           bool
	outlookSyncTag              string
	outlookSyncTZ               string
	outlookSyncSansIntervention bool
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as shifts",
	Args:  cobra.NoArgs,
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTag, "tag", "", "Note tag for imported events (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncSansIntervention, "sans-intervention", false, "Import events as on-call availability without intervention")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncWindow resolves the --date/--from/--to flags into a day range.
func syncWindow(date, from, to string) (time.Time, time.Time, error) {
	switch {
	case date != "":
		d, err := parseDay(date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --date: %w", err)
		}
		return d, d, nil
	case from != "" || to != "":
		if from == "" {
			return time.Time{}, time.Time{}, errors.New("--from is required when --to is specified")
		}
		f, err := parseDay(from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
		}
		t := today()
		if to != "" {
			if t, err = parseDay(to); err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
			}
		}
		if t.Before(f) {
			return time.Time{}, time.Time{}, errors.New("--to is before --from")
		}
		return f, t, nil
	}
	d := today()
	return d, d, nil
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from, to, err := syncWindow(outlookSyncDate, outlookSyncFrom, outlookSyncTo)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}

	timezone := e.cfg.Outlook.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}
	tag := e.cfg.Outlook.DefaultTag
	if outlookSyncTag != "" {
		tag = outlookSyncTag
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n\n",
		timecalc.DateKey(from), timecalc.DateKey(to), dryTag)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store := msgraph.TokenStore{Base: e.base}
	tok, oc, err := msgraph.Authenticate(ctx, store, e.cfg.Outlook.TenantID, e.cfg.Outlook.ClientID, out)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, store, tok, oc)

	// Overnight slots starting on the last day end the day after.
	events, err := client.GetCalendarView(ctx, from, to.AddDate(0, 0, 1), timezone)
	if err != nil {
		return ioError(fmt.Errorf("failed to fetch calendar events: %w", err))
	}

	result, err := msgraph.SyncEvents(events, msgraph.SyncOptions{
		Base:             e.base,
		From:             from,
		To:               to,
		DryRun:           outlookSyncDryRun,
		Timezone:         timezone,
		Tag:              tag,
		SansIntervention: outlookSyncSansIntervention,
		Out:              out,
	})
	if err != nil {
		return ioError(fmt.Errorf("sync error: %w", err))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d updated\n", result.Updated)
	if result.Errors > 0 {
		return ioError(fmt.Errorf("%d events could not be imported", result.Errors))
	}
	return nil
}
