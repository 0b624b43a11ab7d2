package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/xuri/excelize/v2"
)

const (
	progressSheet = "Progress"
	dailySheet    = "Daily"
	headerRow     = 5
)

// fixedColumns precede the week-ending columns on the progress sheet.
var fixedColumns = []struct {
	title string
	width float64
}{
	{"Code", 12}, {"Description", 40}, {"Size", 8}, {"Spec", 8}, {"Insulation", 10}, {"Sheet", 10},
	{"Qty", 10}, {"Unit", 6}, {"Craft MH", 10}, {"Weld MH", 10}, {"Total MH", 10}, {"Earned MH", 10}, {"%", 6},
}

// Generate renders export data as an xlsx workbook with a progress sheet
// (one column per week ending) and a daily sheet (one column per entry date).
func Generate(data *app.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), progressSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("add daily sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeProgress(f, st, data); err != nil {
		return nil, err
	}
	if err := writeDaily(f, st, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile generates the workbook and writes it to path.
func WriteFile(path string, data *app.ExportData) error {
	b, err := Generate(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeProgress(f *excelize.File, st *styles, data *app.ExportData) error {
	w := &sheetWriter{f: f, sheet: progressSheet}
	lastCol := len(fixedColumns) + len(data.WeekEndings)

	w.title(1, lastCol, data.Project.Name, st.title)
	w.title(2, lastCol, fmt.Sprintf("Job %s  Proposal %s  %s", data.Project.JobNumber, data.Project.ProposalNumber, data.Project.Location), st.subtitle)
	w.title(3, lastCol, fmt.Sprintf("Earned %.1f of %.1f MH (%d%%)", data.Totals.EarnedMH, data.Totals.TotalMH, data.Totals.PercentComplete), st.subtitle)

	for i, c := range fixedColumns {
		w.width(i+1, c.width)
		w.set(i+1, headerRow, c.title)
	}
	for i, week := range data.WeekEndings {
		col := len(fixedColumns) + i + 1
		w.width(col, 12)
		w.set(col, headerRow, "WE "+week)
	}
	w.style(1, headerRow, lastCol, headerRow, st.header)

	row := headerRow + 1
	for _, r := range data.Rows {
		w.set(1, row, sanitizeExcelCell(r.Code))
		w.set(2, row, indent(r))
		w.set(3, row, sanitizeExcelCell(r.Size))
		w.set(4, row, sanitizeExcelCell(r.Spec))
		w.set(5, row, sanitizeExcelCell(r.Insulation))
		w.set(6, row, sanitizeExcelCell(r.Sheet))
		if r.Kind == app.ExportRowDetail {
			w.set(7, row, r.Quantity)
			w.set(8, row, sanitizeExcelCell(r.Unit))
		}
		w.set(9, row, r.CraftMH)
		w.set(10, row, r.WeldMH)
		w.set(11, row, r.TotalMH)
		w.set(12, row, r.EarnedMH)
		w.set(13, row, r.PercentComplete)
		for i, week := range data.WeekEndings {
			if v, ok := r.Weekly[week]; ok && v != 0 {
				w.set(len(fixedColumns)+i+1, row, v)
			}
		}
		w.style(1, row, lastCol, row, st.forKind(r.Kind))
		row++
	}

	row++
	w.set(11, row, data.Totals.TotalMH)
	w.set(12, row, data.Totals.EarnedMH)
	w.set(13, row, data.Totals.PercentComplete)
	w.set(10, row, "Totals:")
	w.style(10, row, 13, row, st.summary)

	return w.err
}

func writeDaily(f *excelize.File, st *styles, data *app.ExportData) error {
	w := &sheetWriter{f: f, sheet: dailySheet}
	lastCol := 3 + len(data.Dates)

	for i, h := range []string{"Code", "Description", "Unit"} {
		w.set(i+1, 1, h)
	}
	w.width(2, 40)
	for i, d := range data.Dates {
		w.width(4+i, 12)
		w.set(4+i, 1, d)
	}
	w.style(1, 1, lastCol, 1, st.header)

	row := 2
	for _, r := range data.Rows {
		w.set(1, row, sanitizeExcelCell(r.Code))
		w.set(2, row, indent(r))
		w.set(3, row, sanitizeExcelCell(r.Unit))
		for i, d := range data.Dates {
			if v, ok := r.Daily[d]; ok && v != 0 {
				w.set(4+i, row, v)
			}
		}
		w.style(1, row, lastCol, row, st.forKind(r.Kind))
		row++
	}
	return w.err
}

func indent(r app.ExportRow) string {
	d := sanitizeExcelCell(r.Description)
	switch r.Kind {
	case app.ExportRowPhase:
		return "  " + d
	case app.ExportRowDetail:
		return "    " + d
	}
	return d
}

// sheetWriter addresses cells by 1-based column and row and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	return name
}

func (w *sheetWriter) set(col, row int, v any) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, w.cell(col, row), v); err != nil {
		w.err = fmt.Errorf("set %s!%s: %w", w.sheet, w.cell(col, row), err)
	}
}

func (w *sheetWriter) style(fromCol, fromRow, toCol, toRow, style int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellStyle(w.sheet, w.cell(fromCol, fromRow), w.cell(toCol, toRow), style); err != nil {
		w.err = fmt.Errorf("style %s: %w", w.sheet, err)
	}
}

func (w *sheetWriter) width(col int, width float64) {
	if w.err != nil {
		return
	}
	name, err := excelize.ColumnNumberToName(col)
	if err == nil {
		err = w.f.SetColWidth(w.sheet, name, name, width)
	}
	if err != nil {
		w.err = fmt.Errorf("width %s col %d: %w", w.sheet, col, err)
	}
}

func (w *sheetWriter) title(row, lastCol int, text string, style int) {
	if w.err != nil {
		return
	}
	if lastCol > 1 {
		if err := w.f.MergeCell(w.sheet, w.cell(1, row), w.cell(lastCol, row)); err != nil {
			w.err = fmt.Errorf("merge row %d: %w", row, err)
			return
		}
	}
	w.set(1, row, sanitizeExcelCell(text))
	w.style(1, row, lastCol, row, style)
}
