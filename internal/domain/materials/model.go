package materials

type Type string

const (
	TypeConcentrate Type = "Cons"
	TypePaste       Type = "Paste"
	TypeOthers      Type = "Others"
)

// Material: строка справочника сырья. Загружается один раз и в течение прогона не меняется.
type Material struct {
	ID       string
	Name     string
	Type     Type
	Category string // H, N, PK, P, RI, RE, Ox, OX ...
}

// id материала -> название, результат Resolve
type Names map[string]string
