package report

import (
	"bytes"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

func TestWriteWorkbook_ReadBack(t *testing.T) {
	rng := mustRange(t, jan(1), jan(3))
	m := materials.Material{ID: "11107", Name: "Konz H1", Type: materials.TypeConcentrate, Category: "H"}
	wb := Workbook{
		Meta:      Meta{From: jan(1), To: jan(3), Version: "Budget 2024"},
		Rows:      Assemble(rng, Inputs{}),
		Sums:      []SumRow{{Label: "Paid Raw Materials", Budget: 300, Forecast: 310.5, Actual: 0}},
		Materials: []MaterialRow{{Day: jan(1), Material: m, Budget: 1.5, Actual: 2}},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, wb); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	for _, want := range []string{SheetReport, SheetSums, SheetMaterials} {
		if !slices.Contains(sheets, want) {
			t.Fatalf("sheet %q missing in %v", want, sheets)
		}
	}

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("%s!%s: %v", sheet, ref, err)
		}
		return v
	}

	for _, s := range sheets {
		if cell(s, "A1") != "Description" || cell(s, "B1") != "Value" {
			t.Fatalf("%s: metadata header missing", s)
		}
		if cell(s, "A2") != "Start Date:" || cell(s, "B2") != "2024-01-01" {
			t.Fatalf("%s: start = %q", s, cell(s, "B2"))
		}
		if cell(s, "B3") != "2024-01-03" || cell(s, "B4") != "Budget 2024" {
			t.Fatalf("%s: meta = %q %q", s, cell(s, "B3"), cell(s, "B4"))
		}
	}

	if cell(SheetReport, "A6") != "Day" || cell(SheetReport, "N6") != "Average Pb in Slag" {
		t.Fatalf("report header = %q .. %q", cell(SheetReport, "A6"), cell(SheetReport, "N6"))
	}
	rows, err := f.GetRows(SheetReport)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	// 4 строки метаданных, пустая, заголовок и 3 дня
	if len(rows) != 9 {
		t.Fatalf("report rows = %d", len(rows))
	}
	if rows[8][0] != "2024-01-03" || rows[8][4] != "0 %" {
		t.Fatalf("last row = %v", rows[8])
	}

	if cell(SheetSums, "A7") != "Paid Raw Materials" || cell(SheetSums, "C7") != "310.5" {
		t.Fatalf("sums row = %q %q", cell(SheetSums, "A7"), cell(SheetSums, "C7"))
	}
	if cell(SheetMaterials, "B7") != "Konz H1" || cell(SheetMaterials, "H7") != "2" {
		t.Fatalf("material row = %q %q", cell(SheetMaterials, "B7"), cell(SheetMaterials, "H7"))
	}
	if FileName(wb.Meta) != "Report_2024-01-01_2024-01-03.xlsx" {
		t.Fatalf("file name = %s", FileName(wb.Meta))
	}
}
