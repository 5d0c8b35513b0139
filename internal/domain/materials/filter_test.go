package materials

import (
	"reflect"
	"testing"
)

func TestFilter_Where(t *testing.T) {
	tests := []struct {
		name  string
		f     Filter
		where string
		args  []any
	}{
		{name: "empty", f: Filter{}, where: "", args: nil},
		{
			name:  "type only",
			f:     ByType(TypeConcentrate),
			where: " WHERE material_type IN ($1)",
			args:  []any{"Cons"},
		},
		{
			name:  "type and category",
			f:     ByType(TypeOthers, "RI"),
			where: " WHERE material_type IN ($1) AND upper(category) IN ($2)",
			args:  []any{"Others", "RI"},
		},
		{
			name:  "category set",
			f:     ByCategory("Ox", "P"),
			where: " WHERE upper(category) IN ($1,$2)",
			args:  []any{"OX", "P"},
		},
		{
			name:  "name",
			f:     ByName("Blei-Konzentrat"),
			where: " WHERE name = $1",
			args:  []any{"Blei-Konzentrat"},
		},
		{
			name:  "all fields",
			f:     Filter{Types: []Type{TypePaste}, Categories: []string{"P"}, Name: "x"},
			where: " WHERE material_type IN ($1) AND upper(category) IN ($2) AND name = $3",
			args:  []any{"Paste", "P", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.f.Where(0)
			if where != tt.where {
				t.Fatalf("where = %q, want %q", where, tt.where)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Fatalf("args = %v, want %v", args, tt.args)
			}
		})
	}
}

func TestFilter_WhereOffset(t *testing.T) {
	where, args := ByType(TypeConcentrate, "H").Where(2)
	if where != " WHERE material_type IN ($3) AND upper(category) IN ($4)" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v", args)
	}
}

func TestFilter_Match(t *testing.T) {
	m := Material{ID: "11107", Name: "Konz A", Type: TypeConcentrate, Category: "H"}
	cases := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{ByType(TypeConcentrate), true},
		{ByType(TypeConcentrate, "H"), true},
		{ByType(TypeConcentrate, "N"), false},
		{ByType(TypeOthers), false},
		{ByCategory("OX", "H"), true},
		{ByName("Konz A"), true},
		{ByName("Konz B"), false},
	}
	for _, tc := range cases {
		if got := tc.f.Match(m); got != tc.want {
			t.Fatalf("%s: Match = %v, want %v", tc.f, got, tc.want)
		}
	}
}

func TestFilter_String(t *testing.T) {
	if s := (Filter{}).String(); s != "all materials" {
		t.Fatalf("empty = %q", s)
	}
	if s := ByType(TypeOthers, "RI", "RE").String(); s != "type=Others category=RI,RE" {
		t.Fatalf("got %q", s)
	}
}

func TestFilter_MatchCategoryIgnoresCase(t *testing.T) {
	ox := Material{ID: "40001", Name: "Oxid", Type: TypeOthers, Category: "Ox"}
	if !ByCategory("OX", "P").Match(ox) {
		t.Fatalf("OX must match Ox")
	}
	if !ByType(TypeOthers, "ox").Match(ox) {
		t.Fatalf("ox must match Ox")
	}
	if ByCategory("P").Match(ox) {
		t.Fatalf("P must not match Ox")
	}
}
