package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
)

// entryFlags are the qualifiers shared by add and edit.
type entryFlags struct {
	sansIntervention bool
	intervention     bool
	formation        bool
	typeAstreinte    string
	fpc              int
	suppressionMidi  bool
	note             string
	tags             string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.sansIntervention, "sans-intervention", false, "On-call availability without intervention (never counted)")
	fs.BoolVar(&f.intervention, "intervention", false, "On-call intervention (travel is valorised)")
	fs.BoolVar(&f.formation, "formation", false, "Training")
	fs.StringVar(&f.typeAstreinte, "type", "", "On-call type label")
	fs.IntVar(&f.fpc, "fpc", 0, "Continuous training day of 7 or 8 hours (sets canonical times)")
	fs.BoolVar(&f.suppressionMidi, "suppression-midi", false, "Deduct the 12:00-12:45 lunch break")
	fs.StringVar(&f.note, "note", "", "Free-text note")
	fs.StringVar(&f.tags, "tags", "", "Comma-separated note tags")
}

func splitTags(s string) []string {
	tags := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// apply copies onto e the flags the user set explicitly, so edit only
// touches what was asked for.
func (f *entryFlags) apply(cmd *cobra.Command, e *model.ShiftEntry) {
	changed := cmd.Flags().Changed
	if changed("sans-intervention") {
		e.IsAstreinteSansIntervention = f.sansIntervention
	}
	if changed("intervention") {
		e.IsInterventionAstreinte = f.intervention
	}
	if changed("formation") {
		e.IsFormation = f.formation
	}
	if changed("type") {
		if f.typeAstreinte == "" {
			e.TypeAstreinte = nil
		} else {
			t := f.typeAstreinte
			e.TypeAstreinte = &t
		}
	}
	if changed("fpc") {
		e.IsFPC = f.fpc != 0
		e.FPCHeures = f.fpc
	}
	if changed("suppression-midi") {
		e.SuppressionMidi = f.suppressionMidi
	}
	if changed("note") {
		e.Note = f.note
	}
	if changed("tags") {
		e.NoteTags = splitTags(f.tags)
	}
}
