package loader

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

func xlsx(t *testing.T, sheet string, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if def := f.GetSheetName(0); def != sheet {
		if err := f.SetSheetName(def, sheet); err != nil {
			t.Fatalf("sheet: %v", err)
		}
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestReadParams(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]any
		wantErr error
	}{
		{"dotted", [][]any{{"Start", "01.01.2024"}, {"End", "31.01.2024"}, {"Version", "FC 03"}}, nil},
		{"iso", [][]any{{"Start", "2024-01-01"}, {"End", "2024-01-31"}, {"Version", "FC 03"}}, nil},
		{"bad date", [][]any{{"Start", "1/1/24"}, {"End", "31.01.2024"}, {"Version", "FC 03"}}, dates.ErrFormat},
		{"reversed", [][]any{{"Start", "31.01.2024"}, {"End", "01.01.2024"}, {"Version", "FC 03"}}, dates.ErrRange},
		{"no version", [][]any{{"Start", "01.01.2024"}, {"End", "31.01.2024"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ReadParams(xlsx(t, "Sheet1", tt.rows))
			switch {
			case tt.name == "no version":
				if err == nil {
					t.Fatalf("expected error for empty version")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatalf("ReadParams: %v", err)
				}
				if p.Version != "FC 03" || p.Range.From != dates.New(2024, time.January, 1) || p.Range.Len() != 31 {
					t.Fatalf("params = %+v", p)
				}
			}
		})
	}
}

func TestReadMaterials(t *testing.T) {
	r := xlsx(t, MaterialsSheet, [][]any{
		{"material_name", "dim_material_id", "material_type", "category"},
		{"Konz H1", "11.1.07", "Cons", "H"},
		{"Paste", "40.0.01", "Paste"},
		{"", "", "", ""},
	})
	ms, err := ReadMaterials(r)
	if err != nil {
		t.Fatalf("ReadMaterials: %v", err)
	}
	want := []materials.Material{
		{ID: "11107", Name: "Konz H1", Type: materials.TypeConcentrate, Category: "H"},
		{ID: "40001", Name: "Paste", Type: materials.TypePaste},
	}
	if len(ms) != len(want) {
		t.Fatalf("materials = %+v", ms)
	}
	for i := range want {
		if ms[i] != want[i] {
			t.Fatalf("[%d] = %+v, want %+v", i, ms[i], want[i])
		}
	}
}

func TestReadMaterials_MissingColumn(t *testing.T) {
	_, err := ReadMaterials(xlsx(t, MaterialsSheet, [][]any{{"dim_material_id", "material_name"}, {"1", "x"}}))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestMaterialID(t *testing.T) {
	for in, want := range map[string]string{"11.1.07": "11107", "11107": "110", "123": "123"} {
		if got := MaterialID(in); got != want {
			t.Fatalf("MaterialID(%q) = %q, want %q", in, got, want)
		}
	}
}
