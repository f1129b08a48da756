package synth

// Parameter is one parameter of a generated declaration.
type Parameter struct {
	Name string
	Type string
}

// String returns "name type".
func (p Parameter) String() string {
	return p.Name + " " + p.Type
}

// BuildParameter turns a field into a constructor parameter. It returns false
// when the field is not representable.
func BuildParameter(f *Field) (Parameter, bool) {
	if !f.Representable() {
		return Parameter{}, false
	}

	return Parameter{Name: f.Name, Type: f.Type}, true
}
