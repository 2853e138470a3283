package views

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"imuplot/models"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// ColumnSummary holds descriptive statistics of one measurement column.
type ColumnSummary struct {
	Column string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes per-column statistics. It returns nil for an empty table.
func Summarize(t *models.SampleTable) []ColumnSummary {
	if t.Len() == 0 {
		return nil
	}
	out := make([]ColumnSummary, 0, 6)
	for _, col := range models.MeasurementColumns() {
		ys, _ := t.Column(col)
		mean, std := stat.MeanStdDev(ys, nil)
		if len(ys) < 2 {
			std = 0
		}
		out = append(out, ColumnSummary{
			Column: col,
			Min:    floats.Min(ys),
			Max:    floats.Max(ys),
			Mean:   mean,
			StdDev: std,
		})
	}
	return out
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newTableWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

// RenderTable prints the rows of t, at most limit of them when limit > 0.
func RenderTable(w io.Writer, title string, t *models.SampleTable, limit int) {
	if title != "" {
		_, _ = fmt.Fprintln(w, titleStyle.Render(title))
	}
	if t.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := newTableWriter(w)
	header := make(table.Row, 0, len(RequiredColumns))
	for _, col := range RequiredColumns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		s := t.Row(i)
		tw.AppendRow(table.Row{
			s.Index,
			formatFloat(s.AccelX), formatFloat(s.AccelY), formatFloat(s.AccelZ),
			formatFloat(s.GiroX), formatFloat(s.GiroY), formatFloat(s.GiroZ),
		})
	}
	tw.Render()

	if n < t.Len() {
		_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", n, t.Len())
		return
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.Len())
}

// RenderSummary prints min, max, mean and standard deviation per column.
func RenderSummary(w io.Writer, title string, t *models.SampleTable) {
	if title != "" {
		_, _ = fmt.Fprintln(w, titleStyle.Render(title))
	}
	summary := Summarize(t)
	if len(summary) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := newTableWriter(w)
	tw.AppendHeader(table.Row{"column", "min", "max", "mean", "std_dev"})
	for _, s := range summary {
		tw.AppendRow(table.Row{
			s.Column,
			strconv.FormatFloat(s.Min, 'f', 2, 64),
			strconv.FormatFloat(s.Max, 'f', 2, 64),
			strconv.FormatFloat(s.Mean, 'f', 4, 64),
			strconv.FormatFloat(s.StdDev, 'f', 4, 64),
		})
	}
	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.Len())
}
