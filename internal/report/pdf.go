package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Jour", 18}, {"Date", 26}, {"Travaillé", 24}, {"Habillage", 24},
	{"Total", 22}, {"Trajet", 22}, {"Prime", 18}, {"IK", 16},
}

// WeekPDF writes an A4 compliance sheet for the week.
func WeekPDF(w io.Writer, s compliance.WeekSummary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Suivi astreinte "+timecalc.WeekLabel(s.WeekStart)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Semaine %s", timecalc.WeekLabel(s.WeekStart))))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Du %s au %s", timecalc.DateKey(s.WeekStart), timecalc.DateKey(s.WeekEnd)))
	pdf.Ln(7)

	r, g, b := levelColor(s.OverallStatus)
	pdf.SetFillColor(r, g, b)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Statut : "+s.OverallStatus.String(), "1", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, d := range s.Days {
		cells := []string{
			dayNames[i], timecalc.DateKey(d.Date),
			timecalc.FormatHours(d.HoursWorked), timecalc.FormatHours(d.HabillageHours),
			timecalc.FormatHours(d.TotalHours), timecalc.FormatHours(d.TrajetHeures),
			yesNo(d.PrimeRepas), yesNo(d.IKAlert),
		}
		for j, c := range pdfColumns {
			pdf.CellFormat(c.width, 6, cells[j], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Total : %s / plafond %s", timecalc.FormatHours(s.TotalHours), timecalc.FormatHours(s.PlafondAutorise)),
		fmt.Sprintf("Heures restantes : %s", timecalc.FormatHours(s.HeuresRestantes)),
		fmt.Sprintf("Repos quotidien : %s", okLabel(s.ReposQuotidienOk)),
		fmt.Sprintf("Repos hebdomadaire : %s (plus long repos %s)", okLabel(s.ReposHebdoOk), timecalc.FormatMinutes(s.MaxReposMinutes)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, tr(l))
		pdf.Ln(6)
	}

	if len(s.Alerts) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Alertes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, a := range s.Alerts {
			r, g, b := levelColor(a.Level)
			pdf.SetTextColor(r/2, g/2, b/2)
			pdf.MultiCell(0, 5, tr(AlertLine(a)), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}

	if len(s.OvertimeDetails) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr("Heures supplémentaires"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range s.OvertimeDetails {
			pdf.Cell(0, 5, fmt.Sprintf("%s : %s x %.2f", l.Label, timecalc.FormatHours(l.Hours), l.Multiplier))
			pdf.Ln(5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

func levelColor(l compliance.Level) (int, int, int) {
	switch l {
	case compliance.Rouge:
		return 240, 120, 120
	case compliance.Orange:
		return 250, 190, 110
	default:
		return 150, 220, 150
	}
}
