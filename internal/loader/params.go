package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/rawmat-report/internal/dates"
)

// управляющие параметры прогона из xlsx: B1 начало, B2 конец, B3 версия
type Params struct {
	Range   dates.Range
	Version string
}

// ReadParams читает первый лист файла параметров.
// Даты принимаются как DD.MM.YYYY или YYYY-MM-DD.
func ReadParams(r io.Reader) (Params, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Params{}, fmt.Errorf("open params: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	var vals [3]string
	for i := range vals {
		cell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return Params{}, err
		}
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return Params{}, fmt.Errorf("params %s: %w", cell, err)
		}
		vals[i] = strings.TrimSpace(v)
	}

	from, err := parseDay(vals[0])
	if err != nil {
		return Params{}, fmt.Errorf("start date: %w", err)
	}
	to, err := parseDay(vals[1])
	if err != nil {
		return Params{}, fmt.Errorf("end date: %w", err)
	}
	rng, err := dates.NewRange(from, to)
	if err != nil {
		return Params{}, err
	}
	if vals[2] == "" {
		return Params{}, errors.New("version name is empty")
	}
	return Params{Range: rng, Version: vals[2]}, nil
}

func parseDay(s string) (dates.Day, error) {
	if d, err := dates.ParseDay(s); err == nil {
		return d, nil
	}
	return dates.ParseISO(s)
}
