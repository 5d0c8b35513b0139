package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetReport    = "Report"
	SheetSums      = "Category Sums"
	SheetMaterials = "Report per Material"

	// первая строка таблицы под блоком метаданных
	tableRow = 6
)

// WriteWorkbook пишет три листа отчёта в w. Каждый лист начинается
// с блока Description/Value (даты и версия), таблица идёт с 6-й строки.
func WriteWorkbook(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// лист по умолчанию переименовываем в первый лист отчёта
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetReport); err != nil {
		return err
	}
	for _, name := range []string{SheetSums, SheetMaterials} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	reportRows := make([][]any, len(wb.Rows))
	for i, r := range wb.Rows {
		cells := r.Cells()
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		reportRows[i] = row
	}
	sumRows := make([][]any, len(wb.Sums))
	for i, r := range wb.Sums {
		sumRows[i] = r.Cells()
	}
	matRows := make([][]any, len(wb.Materials))
	for i, r := range wb.Materials {
		matRows[i] = r.Cells()
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetReport, Columns, reportRows},
		{SheetSums, SumColumns, sumRows},
		{SheetMaterials, MaterialColumns, matRows},
	}
	for _, s := range sheets {
		if err := writeMeta(f, s.name, wb.Meta); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		if err := writeTable(f, s.name, s.header, s.rows); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return f.Write(w)
}

func writeMeta(f *excelize.File, sheet string, m Meta) error {
	rows := [][]any{
		{"Description", "Value"},
		{"Start Date:", m.From.ISO()},
		{"End Date:", m.To.ISO()},
		{"Version Name:", m.Version},
	}
	return setRows(f, sheet, 1, rows)
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]any) error {
	h := make([]any, len(header))
	for i, c := range header {
		h[i] = c
	}
	if err := setRows(f, sheet, tableRow, [][]any{h}); err != nil {
		return err
	}
	return setRows(f, sheet, tableRow+1, rows)
}

func setRows(f *excelize.File, sheet string, from int, rows [][]any) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, from+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func FileName(m Meta) string {
	return fmt.Sprintf("Report_%s_%s.xlsx", m.From.ISO(), m.To.ISO())
}
