package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
)

var weekStart = time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)

func prepared(t *testing.T, e model.ShiftEntry) model.ShiftEntry {
	t.Helper()
	p, err := compliance.Prepare(e)
	require.NoError(t, err)
	return p
}

func sampleWeek(t *testing.T) ([]model.ShiftEntry, compliance.WeekSummary) {
	t.Helper()
	entries := []model.ShiftEntry{
		prepared(t, model.ShiftEntry{ID: "aaaaaaaa-1", Date: "2026-02-23", StartTime: "08:00", EndTime: "16:45", Note: "poste, salle B"}),
		prepared(t, model.ShiftEntry{ID: "bbbbbbbb-2", Date: "2026-02-24", StartTime: "01:00", EndTime: "05:00", IsInterventionAstreinte: true}),
		prepared(t, model.ShiftEntry{ID: "cccccccc-3", Date: "2026-02-25", StartTime: "20:00", EndTime: "08:00", IsAstreinteSansIntervention: true}),
	}
	return entries, compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
}

func TestWeekMarkdown(t *testing.T) {
	_, w := sampleWeek(t)
	var buf bytes.Buffer
	require.NoError(t, report.WeekMarkdown(&buf, w))
	out := buf.String()

	assert.Contains(t, out, "# Semaine 2026-W09 (2026-02-22 au 2026-02-28)")
	assert.Contains(t, out, "Statut : **ORANGE**")
	assert.Contains(t, out, "| lun | 2026-02-23 | 8.75h | 1.00h | 9.75h | 0.00h | oui | non |")
	assert.Contains(t, out, "## Alertes")
	assert.Contains(t, out, "[orange] R2")
	assert.Contains(t, out, "(2026-02-23)")
	assert.NotContains(t, out, "Heures supplémentaires")
}

func TestStatusTable(t *testing.T) {
	_, w := sampleWeek(t)
	empty := compliance.ComputeWeekSummary(nil, weekStart.AddDate(0, 0, 7), settings.Defaults())

	var buf bytes.Buffer
	require.NoError(t, report.StatusTable(&buf, []compliance.WeekSummary{w, empty}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "2026-W09")
	assert.Contains(t, lines[2], "orange")
	assert.Contains(t, lines[2], "R2")
	assert.Contains(t, lines[3], "vert")
}

func TestEntriesCSV(t *testing.T) {
	entries, _ := sampleWeek(t)
	var buf bytes.Buffer
	require.NoError(t, report.EntriesCSV(&buf, entries))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "effective_minutes", rows[0][4])
	assert.Equal(t, "525", rows[1][4])
	assert.Equal(t, "poste, salle B", rows[1][7])
	assert.Equal(t, "intervention", rows[2][5])
	assert.Equal(t, "0", rows[3][4])
}

func TestWeekCSV(t *testing.T) {
	_, w := sampleWeek(t)
	var buf bytes.Buffer
	require.NoError(t, report.WeekCSV(&buf, w))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, []string{"2026-02-23", "8.75", "1.00", "9.75", "0.00", "true", "false", "R2"}, rows[2])
	assert.Equal(t, "total", rows[8][0])
	assert.Equal(t, "status=orange", rows[8][7])
}

func TestEntriesMarkdownShowsAutoComments(t *testing.T) {
	entries, _ := sampleWeek(t)
	annotated := compliance.New(settings.Defaults()).Annotate(entries)

	var buf bytes.Buffer
	require.NoError(t, report.EntriesMarkdown(&buf, annotated))
	out := buf.String()
	assert.Contains(t, out, "| 2026-02-23 | aaaaaaaa | 08:00 | 16:45 | 8h 45m |")
	assert.Contains(t, out, "Prime repas")
	assert.Contains(t, out, "IK à vérifier")
}

func TestWeekPDF(t *testing.T) {
	_, w := sampleWeek(t)
	w.OvertimeDetails = []compliance.OvertimeLine{{Label: "35h-43h", Hours: 2, Multiplier: 1.25}}

	var buf bytes.Buffer
	require.NoError(t, report.WeekPDF(&buf, w))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}
