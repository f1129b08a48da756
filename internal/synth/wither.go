package synth

import (
	"strings"

	"wither-generator/internal/decl"
)

// ValueParam is the name of the single wither parameter.
const ValueParam = "value"

// Argument is one labeled argument of the constructor call in a wither body.
type Argument struct {
	// Label is the constructor parameter the argument binds to.
	Label string
	// Value is ValueParam for the target field, otherwise the field name
	// read from the receiver.
	Value string
	// FromReceiver is true when Value is read from the receiver.
	FromReceiver bool
}

// String returns "label: value" with receiver reads prefixed by "self.".
func (a Argument) String() string {
	if a.FromReceiver {
		return a.Label + ": self." + a.Value
	}

	return a.Label + ": " + a.Value
}

// Wither is a generated method returning a copy of the record with one
// field replaced.
type Wither struct {
	// Name equals the target field's identifier.
	Name   string
	Field  Field
	Access decl.Access
	Param  Parameter
	Args   []Argument
	// Returns is the record type.
	Returns string
}

// MemberName returns the method name.
func (w *Wither) MemberName() string {
	return w.Name
}

// Signature returns e.g. "name(value string) User".
func (w *Wither) Signature() string {
	return w.Name + "(" + w.Param.String() + ") " + w.Returns
}

// Call returns the constructor call of the body, e.g.
// "User(name: value, age: self.age)".
func (w *Wither) Call() string {
	parts := make([]string, len(w.Args))
	for i, a := range w.Args {
		parts[i] = a.String()
	}

	return w.Returns + "(" + strings.Join(parts, ", ") + ")"
}

// SynthesizeWither builds the wither for fields[target]. It returns false when
// the target is private, not representable, or out of range.
func SynthesizeWither(d *decl.Declaration, fields []Field, access decl.Access, target int) (*Wither, bool) {
	if target < 0 || target >= len(fields) {
		return nil, false
	}

	tf := fields[target]
	if tf.IsPrivate || !tf.Representable() {
		return nil, false
	}

	w := &Wither{
		Name:    tf.Name,
		Field:   tf,
		Access:  access,
		Param:   Parameter{Name: ValueParam, Type: tf.Type},
		Returns: d.Name,
	}

	for i := range fields {
		f := &fields[i]
		if !f.Representable() {
			continue
		}

		if i == target {
			w.Args = append(w.Args, Argument{Label: f.Name, Value: ValueParam})
			continue
		}

		w.Args = append(w.Args, Argument{Label: f.Name, Value: f.Name, FromReceiver: true})
	}

	return w, true
}
