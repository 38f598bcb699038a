package schema

// SelectorKind identifies the input a field is edited with.
type SelectorKind int

const (
	SelectorText SelectorKind = iota
	SelectorIcon
	SelectorBoolean
	SelectorSelect
	SelectorEntity
	SelectorAttribute
	SelectorHexColor
	SelectorUIAction
	SelectorInteger
	SelectorFloat
)

// String returns the selector name as it appears in Lovelace schemas.
func (k SelectorKind) String() string {
	switch k {
	case SelectorText:
		return "text"
	case SelectorIcon:
		return "icon"
	case SelectorBoolean:
		return "boolean"
	case SelectorSelect:
		return "select"
	case SelectorEntity:
		return "entity"
	case SelectorAttribute:
		return "attribute"
	case SelectorHexColor:
		return "hex_color"
	case SelectorUIAction:
		return "ui_action"
	case SelectorInteger:
		return "integer"
	case SelectorFloat:
		return "float"
	}
	return "unknown"
}

// Option is one choice of a select field. Value may be a string or a bool.
type Option struct {
	Label string
	Value any
}

// Selector describes how a leaf field is edited.
type Selector struct {
	Kind      SelectorKind
	Options   []Option
	Clearable bool
	Dropdown  bool
	Default   any
}

// GroupType distinguishes leaf fields from nested groups.
type GroupType int

const (
	TypeField GroupType = iota
	TypeGrid
	TypeExpandable
)

// Field is one entry of a schema: either a leaf field or a nested group.
// A group with a non-empty Name nests its data under that key.
type Field struct {
	Name     string
	Type     GroupType
	Title    string
	Icon     string
	Selector Selector
	Default  any
	Context  map[string]string
	Schema   []Field
}

// IsGroup reports whether the field contains further fields.
func (f Field) IsGroup() bool {
	return f.Type != TypeField
}

// Leaf is a flattened leaf field with its data path and section title.
type Leaf struct {
	Path    []string
	Field   Field
	Section string
}

// Key returns the last path element, the field's own name.
func (l Leaf) Key() string {
	return l.Path[len(l.Path)-1]
}

// Leaves flattens a schema into its leaf fields in display order.
func Leaves(fields []Field) []Leaf {
	var out []Leaf
	walk(fields, nil, "", &out)
	return out
}

func walk(fields []Field, prefix []string, section string, out *[]Leaf) {
	for _, f := range fields {
		if f.IsGroup() {
			path := prefix
			if f.Name != "" {
				path = appendPath(prefix, f.Name)
			}
			sec := section
			if f.Title != "" {
				sec = f.Title
			}
			walk(f.Schema, path, sec, out)
			continue
		}
		*out = append(*out, Leaf{Path: appendPath(prefix, f.Name), Field: f, Section: section})
	}
}

func appendPath(prefix []string, name string) []string {
	p := make([]string, 0, len(prefix)+1)
	p = append(p, prefix...)
	return append(p, name)
}

// TopLevelKeys returns the data keys a schema writes at its root, in
// display order. Named groups contribute their own name once.
func TopLevelKeys(fields []Field) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, l := range Leaves(fields) {
		k := l.Path[0]
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
