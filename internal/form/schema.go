package form

// Mode selects which fields of a schema are active.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

type fieldSpec struct {
	name       string
	initial    string
	validators []Validator
	filter     KeyFilter
	modes      []Mode
	source     string
	derive     Derivation
}

func (f *fieldSpec) activeIn(mode Mode) bool {
	if len(f.modes) == 0 {
		return true
	}
	for _, m := range f.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Schema is the field table of one entity form. Build it once per page with
// NewSchema and Field, then create form instances with New.
type Schema struct {
	fields []*fieldSpec
	index  map[string]*fieldSpec
}

func NewSchema() *Schema {
	return &Schema{index: map[string]*fieldSpec{}}
}

// Field declares a field, or returns the builder of an already declared one.
func (s *Schema) Field(name string) *FieldBuilder {
	if spec, ok := s.index[name]; ok {
		return &FieldBuilder{spec: spec}
	}
	spec := &fieldSpec{name: name}
	s.fields = append(s.fields, spec)
	s.index[name] = spec
	return &FieldBuilder{spec: spec}
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names lists fields in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.name)
	}
	return out
}

// Defaults returns the initial value of every field.
func (s *Schema) Defaults() Values {
	out := make(Values, len(s.fields))
	for _, f := range s.fields {
		out[f.name] = f.initial
	}
	return out
}

func (s *Schema) dependents(source string) []*fieldSpec {
	var out []*fieldSpec
	for _, f := range s.fields {
		if f.derive != nil && f.source == source {
			out = append(out, f)
		}
	}
	return out
}

type FieldBuilder struct {
	spec *fieldSpec
}

func (b *FieldBuilder) Default(value string) *FieldBuilder {
	b.spec.initial = value
	return b
}

func (b *FieldBuilder) Validate(validators ...Validator) *FieldBuilder {
	b.spec.validators = append(b.spec.validators, validators...)
	return b
}

func (b *FieldBuilder) Filter(filter KeyFilter) *FieldBuilder {
	b.spec.filter = filter
	return b
}

// Only restricts the field to the given modes. Inactive fields neither
// contribute to validity nor appear in Values.
func (b *FieldBuilder) Only(modes ...Mode) *FieldBuilder {
	b.spec.modes = append(b.spec.modes, modes...)
	return b
}

// DerivedFrom recomputes this field whenever source changes.
func (b *FieldBuilder) DerivedFrom(source string, fn Derivation) *FieldBuilder {
	b.spec.source = source
	b.spec.derive = fn
	return b
}
