package materials

import (
	"fmt"
	"slices"
	"strings"
)

// Filter отбирает материалы справочника. Пустые поля не применяются,
// заполненные объединяются через AND, списки через IN.
// Категория сравнивается без учёта регистра: в справочнике встречаются и "Ox", и "OX".
type Filter struct {
	Types      []Type
	Categories []string
	Name       string
}

func ByType(t Type, categories ...string) Filter {
	return Filter{Types: []Type{t}, Categories: categories}
}

func ByCategory(categories ...string) Filter {
	return Filter{Categories: categories}
}

func ByName(name string) Filter {
	return Filter{Name: name}
}

func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Categories) == 0 && f.Name == ""
}

func (f Filter) String() string {
	var parts []string
	if len(f.Types) > 0 {
		ts := make([]string, len(f.Types))
		for i, t := range f.Types {
			ts[i] = string(t)
		}
		parts = append(parts, "type="+strings.Join(ts, ","))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, "category="+strings.Join(f.Categories, ","))
	}
	if f.Name != "" {
		parts = append(parts, fmt.Sprintf("name=%q", f.Name))
	}
	if len(parts) == 0 {
		return "all materials"
	}
	return strings.Join(parts, " ")
}

// Where строит условие WHERE; плейсхолдеры нумеруются с $(offset+1).
func (f Filter) Where(offset int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	in := func(col string, vals []string) {
		ph := make([]string, len(vals))
		for i, v := range vals {
			args = append(args, v)
			ph[i] = fmt.Sprintf("$%d", offset+len(args))
		}
		conds = append(conds, fmt.Sprintf("%s IN (%s)", col, strings.Join(ph, ",")))
	}

	if len(f.Types) > 0 {
		ts := make([]string, len(f.Types))
		for i, t := range f.Types {
			ts[i] = string(t)
		}
		in("material_type", ts)
	}
	if len(f.Categories) > 0 {
		cats := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			cats[i] = strings.ToUpper(c)
		}
		in("upper(category)", cats)
	}
	if f.Name != "" {
		args = append(args, f.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", offset+len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Match проверяет то же условие, что и Where, но в памяти.
func (f Filter) Match(m Material) bool {
	if len(f.Types) > 0 && !contains(f.Types, m.Type) {
		return false
	}
	if len(f.Categories) > 0 && !slices.ContainsFunc(f.Categories, func(c string) bool {
		return strings.EqualFold(c, m.Category)
	}) {
		return false
	}
	if f.Name != "" && f.Name != m.Name {
		return false
	}
	return true
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
