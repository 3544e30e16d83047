//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oshokin/elevator-ids/internal/domain/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderTable formats rows under the result table header.
func RenderTable(rows []report.Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(report.Columns()...)

	for _, row := range rows {
		t.Row(row.Record()...)
	}

	return t.String()
}

// PrintRun writes the selected rows of run and a one-line summary to w.
func PrintRun(w io.Writer, run *report.Run) error {
	if _, err := fmt.Fprintln(w, RenderTable(run.Selected)); err != nil {
		return fmt.Errorf("print table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "run %s: %d of %d rows selected\n", run.ID, len(run.Selected), len(run.Rows)); err != nil {
		return fmt.Errorf("print summary: %w", err)
	}

	return nil
}
