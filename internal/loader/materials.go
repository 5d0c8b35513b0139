package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

const MaterialsSheet = "Materialien"

// ReadMaterials читает справочник сырья. Первая строка содержит заголовок
// с колонками dim_material_id, material_name, material_type, category в любом порядке.
func ReadMaterials(r io.Reader) ([]materials.Material, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open materials: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(MaterialsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", MaterialsSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s: no materials", MaterialsSheet)
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{"dim_material_id", "material_name", "material_type", "category"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("sheet %s: column %q missing", MaterialsSheet, col)
		}
	}

	get := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]materials.Material, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id := get(row, "dim_material_id")
		if id == "" {
			continue
		}
		out = append(out, materials.Material{
			ID:       MaterialID(id),
			Name:     get(row, "material_name"),
			Type:     materials.Type(get(row, "material_type")),
			Category: get(row, "category"),
		})
	}
	return out, nil
}

// MaterialID убирает разделители из номера справочника: "11.1.07" -> "11107".
// Разделители стоят на 3-й и 5-й позициях.
func MaterialID(raw string) string {
	rs := []rune(raw)
	if len(rs) < 5 {
		return raw
	}
	var b strings.Builder
	for i, r := range rs {
		if i == 2 || i == 4 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
