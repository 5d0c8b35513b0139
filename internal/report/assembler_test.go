package report

import (
	"strings"
	"testing"
	"time"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/budget"
	"github.com/Spok95/rawmat-report/internal/domain/reactor"
)

func jan(d int) dates.Day { return dates.New(2024, time.January, d) }

func mustRange(t *testing.T, from, to dates.Day) dates.Range {
	t.Helper()
	r, err := dates.NewRange(from, to)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return r
}

func TestAssemble_EmptyInputsGiveZeroRows(t *testing.T) {
	rows := Assemble(mustRange(t, jan(1), jan(3)), Inputs{})
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Day != jan(i+1) {
			t.Fatalf("row %d day = %s", i, r.Day)
		}
		cells := r.Cells()
		if len(cells) != len(Columns) {
			t.Fatalf("cells = %d, columns = %d", len(cells), len(Columns))
		}
		for j, c := range cells[1:] {
			if c != "0" && c != "0 %" {
				t.Fatalf("row %s column %q = %q", r.Day, Columns[j+1], c)
			}
		}
		if !strings.HasSuffix(cells[4], "%") || strings.HasSuffix(cells[3], "%") {
			t.Fatalf("unexpected units: %v", cells)
		}
	}
}

func TestAssemble_OneRowPerDaySorted(t *testing.T) {
	rng := mustRange(t, jan(30), dates.New(2024, time.February, 2))
	// план за месяц шире интервала: лишние дни не должны давать строк
	plan := []budget.DayValue{
		{Day: jan(29), Budget: 1},
		{Day: jan(30), Budget: 10, Forecast: 20},
		{Day: dates.New(2024, time.February, 2), Budget: 30},
		{Day: dates.New(2024, time.February, 3), Budget: 40},
	}
	rows := Assemble(rng, Inputs{Plan: plan})
	if len(rows) != 4 {
		t.Fatalf("rows = %d", len(rows))
	}
	seen := map[dates.Day]bool{}
	for i, r := range rows {
		if seen[r.Day] {
			t.Fatalf("duplicate day %s", r.Day)
		}
		seen[r.Day] = true
		if i > 0 && !rows[i-1].Day.Before(r.Day) {
			t.Fatalf("not sorted at %d", i)
		}
	}
	if rows[0].Budget != 10 || rows[0].Forecast != 20 {
		t.Fatalf("first row = %+v", rows[0])
	}
	if rows[1].Budget != 0 || rows[3].Budget != 30 {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestAssemble_MergesSources(t *testing.T) {
	d := jan(5)
	rng := mustRange(t, d, d)
	in := Inputs{
		Main: aggregation.Result{
			Daily:       map[dates.Day]aggregation.DayDetail{d: {Total: 100}},
			Percentages: map[dates.Day]float64{d: 20},
		},
		Side:         aggregation.Result{Percentages: map[dates.Day]float64{d: 12.5}},
		Fluxes:       aggregation.Result{Daily: map[dates.Day]aggregation.DayDetail{d: {Total: 33}}},
		Recirculates: aggregation.Result{Daily: map[dates.Day]aggregation.DayDetail{d: {Total: 7}}},
		Baseline:     map[dates.Day]float64{d: 500},
		Plan:         []budget.DayValue{{Day: d, Budget: 480.4, Forecast: 510.6}},
		Reactor: map[dates.Day]reactor.Daily{d: {
			Day: d, Availability: 91.67, AvgFeed: 20.4, Recirculate: 12.6, PbInSlag: 2.35,
		}},
	}

	rows := Assemble(rng, in)
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	r := rows[0]
	if r.Recirculates != 19.6 {
		t.Fatalf("recirculates = %v, want reactor base + KRSM", r.Recirculates)
	}

	want := []string{
		"2024-01-05", "511", "480", "500", "20 %", "12.5 %", "0 %", "0 %", "0 %",
		"20", "33", "91.7 %", "20", "2.4 %",
	}
	got := r.Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %q, want %q", Columns[i], got[i], want[i])
		}
	}
}
