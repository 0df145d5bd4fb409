package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/storage"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a logged shift",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	entry, err := e.findEntry(args[0])
	if err != nil {
		return err
	}
	if err := storage.DeleteEntry(e.base, entry); err != nil {
		return ioError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s  %s %s–%s\n", shortID(entry.ID), entry.Date, entry.StartTime, entry.EndTime)
	return nil
}
