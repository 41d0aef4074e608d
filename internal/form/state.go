package form

import "errors"

var ErrUnknownField = errors.New("unknown field")

// FieldState is the value and validity of one field.
type FieldState struct {
	Value   string
	Valid   bool
	Touched bool
	Errors  []string
}

// State is a live form instance. It is not safe for concurrent use; the
// workflow controller serializes access.
type State struct {
	schema *Schema
	mode   Mode
	fields map[string]*FieldState
}

// New creates a form instance holding the schema defaults.
func (s *Schema) New(mode Mode) *State {
	st := &State{schema: s, mode: mode, fields: make(map[string]*FieldState, len(s.fields))}
	st.Reset()
	return st
}

func (s *State) Mode() Mode {
	return s.mode
}

// SetMode switches between create and edit and re-evaluates validity.
func (s *State) SetMode(mode Mode) {
	s.mode = mode
	s.revalidate()
}

// Reset restores defaults and clears touched flags.
func (s *State) Reset() {
	for _, f := range s.schema.fields {
		s.fields[f.name] = &FieldState{Value: f.initial}
	}
	s.revalidate()
}

// Set assigns a value as paste or programmatic input would, runs the field's
// validators, marks it touched, and recomputes derived fields.
func (s *State) Set(name string, value string) (bool, error) {
	spec, ok := s.schema.index[name]
	if !ok {
		return false, ErrUnknownField
	}
	fs := s.fields[name]
	fs.Value = value
	fs.Touched = true
	s.evaluate(spec)
	s.propagate(name)
	return fs.Valid, nil
}

// Type feeds a single keystroke. Runes rejected by the field's filter are
// dropped and false is returned.
func (s *State) Type(name string, r rune) (bool, error) {
	spec, ok := s.schema.index[name]
	if !ok {
		return false, ErrUnknownField
	}
	current := s.fields[name].Value
	if spec.filter != nil && !spec.filter(current, r) {
		return false, nil
	}
	_, err := s.Set(name, current+string(r))
	return err == nil, err
}

// Accepts reports whether the keystroke filter of name lets r through.
func (s *State) Accepts(name string, r rune) bool {
	spec, ok := s.schema.index[name]
	if !ok {
		return false
	}
	return spec.filter == nil || spec.filter(s.fields[name].Value, r)
}

// Patch copies values for known fields in declaration order and ignores the
// rest. Derivations run as each source is written, so an explicit value for a
// derived field declared after its source wins.
func (s *State) Patch(values map[string]string) {
	for _, f := range s.schema.fields {
		v, ok := values[f.name]
		if !ok {
			continue
		}
		s.fields[f.name].Value = v
		s.propagate(f.name)
	}
	s.revalidate()
}

// Touch marks every active field touched and reports aggregate validity.
func (s *State) Touch() bool {
	for _, f := range s.schema.fields {
		if f.activeIn(s.mode) {
			s.fields[f.name].Touched = true
		}
	}
	s.revalidate()
	return s.Valid()
}

// Valid is the conjunction of every active field's validity.
func (s *State) Valid() bool {
	for _, f := range s.schema.fields {
		if f.activeIn(s.mode) && !s.fields[f.name].Valid {
			return false
		}
	}
	return true
}

// Field returns a copy of one field's state.
func (s *State) Field(name string) (FieldState, bool) {
	fs, ok := s.fields[name]
	if !ok {
		return FieldState{}, false
	}
	out := *fs
	out.Errors = append([]string(nil), fs.Errors...)
	return out, true
}

// Values snapshots the active fields.
func (s *State) Values() Values {
	out := make(Values, len(s.fields))
	for _, f := range s.schema.fields {
		if f.activeIn(s.mode) {
			out[f.name] = s.fields[f.name].Value
		}
	}
	return out
}

// Invalid lists the error messages of every failing active field.
func (s *State) Invalid() map[string][]string {
	out := map[string][]string{}
	for _, f := range s.schema.fields {
		fs := s.fields[f.name]
		if f.activeIn(s.mode) && !fs.Valid {
			out[f.name] = append([]string(nil), fs.Errors...)
		}
	}
	return out
}

func (s *State) allValues() Values {
	out := make(Values, len(s.fields))
	for name, fs := range s.fields {
		out[name] = fs.Value
	}
	return out
}

func (s *State) evaluate(spec *fieldSpec) {
	fs := s.fields[spec.name]
	fs.Errors = fs.Errors[:0]
	if !spec.activeIn(s.mode) {
		fs.Valid = true
		return
	}
	values := s.allValues()
	for _, v := range spec.validators {
		if err := v(fs.Value, values); err != nil {
			var vi *Violation
			if errors.As(err, &vi) {
				fs.Errors = append(fs.Errors, vi.Message)
			} else {
				fs.Errors = append(fs.Errors, err.Error())
			}
		}
	}
	fs.Valid = len(fs.Errors) == 0
}

func (s *State) propagate(source string) {
	for _, dep := range s.schema.dependents(source) {
		s.fields[dep.name].Value = dep.derive(s.fields[source].Value)
		s.propagate(dep.name)
	}
	// Cross-field predicates read peers, so every field is re-checked.
	s.revalidate()
}

func (s *State) revalidate() {
	for _, f := range s.schema.fields {
		s.evaluate(f)
	}
}
