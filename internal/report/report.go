// Package report renders week summaries and entries for humans and
// spreadsheets.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var dayNames = [7]string{"dim", "lun", "mar", "mer", "jeu", "ven", "sam"}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}

func okLabel(b bool) string {
	if b {
		return "ok"
	}
	return "insuffisant"
}

// AlertLine formats one alert as "[rouge] R1 message (2026-02-23)".
func AlertLine(a compliance.Alert) string {
	line := fmt.Sprintf("[%s] %s %s", a.Level, a.Rule.Code(), a.Message)
	if a.Date != nil {
		line += " (" + a.DateKey() + ")"
	}
	return line
}

// WeekMarkdown writes the week summary as a Markdown document.
func WeekMarkdown(w io.Writer, s compliance.WeekSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Semaine %s (%s au %s)\n\n",
		timecalc.WeekLabel(s.WeekStart), timecalc.DateKey(s.WeekStart), timecalc.DateKey(s.WeekEnd))
	fmt.Fprintf(&b, "Statut : **%s**\n\n", strings.ToUpper(s.OverallStatus.String()))

	b.WriteString("| Jour | Date | Travaillé | Habillage | Total | Trajet | Prime repas | IK |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i, d := range s.Days {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			dayNames[i], timecalc.DateKey(d.Date),
			timecalc.FormatHours(d.HoursWorked), timecalc.FormatHours(d.HabillageHours),
			timecalc.FormatHours(d.TotalHours), timecalc.FormatHours(d.TrajetHeures),
			yesNo(d.PrimeRepas), yesNo(d.IKAlert))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "- Total : %s sur un plafond de %s (%d jours travaillés)\n",
		timecalc.FormatHours(s.TotalHours), timecalc.FormatHours(s.PlafondAutorise), s.DaysWorkedCount)
	fmt.Fprintf(&b, "- Heures restantes : %s\n", timecalc.FormatHours(s.HeuresRestantes))
	fmt.Fprintf(&b, "- Repos quotidien : %s\n", okLabel(s.ReposQuotidienOk))
	fmt.Fprintf(&b, "- Repos hebdomadaire : %s (plus long repos %s)\n",
		okLabel(s.ReposHebdoOk), timecalc.FormatMinutes(s.MaxReposMinutes))

	if len(s.Alerts) > 0 {
		b.WriteString("\n## Alertes\n\n")
		for _, a := range s.Alerts {
			fmt.Fprintf(&b, "- %s\n", AlertLine(a))
		}
	}
	if len(s.OvertimeDetails) > 0 {
		b.WriteString("\n## Heures supplémentaires\n\n")
		for _, l := range s.OvertimeDetails {
			fmt.Fprintf(&b, "- %s : %s × %.2f\n", l.Label, timecalc.FormatHours(l.Hours), l.Multiplier)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// StatusTable writes one line per week, oldest first.
func StatusTable(w io.Writer, weeks []compliance.WeekSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-10s %9s %9s %-7s %s\n", "Semaine", "Début", "Total", "Reste", "Statut", "Alertes")
	b.WriteString(strings.Repeat("-", 64) + "\n")
	for _, s := range weeks {
		codes := make([]string, 0, len(s.Alerts))
		for _, a := range s.Alerts {
			codes = append(codes, a.Rule.Code())
		}
		fmt.Fprintf(&b, "%-10s %-10s %9s %9s %-7s %s\n",
			timecalc.WeekLabel(s.WeekStart), timecalc.DateKey(s.WeekStart),
			timecalc.FormatHours(s.TotalHours), timecalc.FormatHours(s.HeuresRestantes),
			s.OverallStatus, strings.Join(codes, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// EntryFlags lists the boolean qualifiers of an entry, e.g. "intervention,fpc8".
func EntryFlags(e model.ShiftEntry) string {
	var flags []string
	if e.IsAstreinteSansIntervention {
		flags = append(flags, "sans-intervention")
	}
	if e.IsInterventionAstreinte {
		flags = append(flags, "intervention")
	}
	if e.IsFormation {
		flags = append(flags, "formation")
	}
	if e.IsFPC {
		flags = append(flags, fmt.Sprintf("fpc%d", e.FPCHeures))
	}
	if e.SuppressionMidi {
		flags = append(flags, "sans-midi")
	}
	if e.TypeAstreinte != nil && *e.TypeAstreinte != "" {
		flags = append(flags, "type="+*e.TypeAstreinte)
	}
	return strings.Join(flags, ",")
}

// EntriesMarkdown writes entries grouped by date as a Markdown table.
// Auto comments are rendered when present.
func EntriesMarkdown(w io.Writer, entries []model.ShiftEntry) error {
	var b strings.Builder
	b.WriteString("| Date | ID | Début | Fin | Effectif | Qualificatifs | Note |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, e := range entries {
		note := e.Note
		for _, c := range e.AutoComments {
			if note != "" {
				note += " · "
			}
			note += c.Text
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			e.Date, shortID(e.ID), e.StartTime, e.EndTime,
			timecalc.FormatMinutes(compliance.EffectiveMinutes(e)), EntryFlags(e),
			strings.ReplaceAll(note, "|", "\\|"))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
