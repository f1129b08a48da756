package synth

import (
	"strings"

	"wither-generator/internal/decl"
)

// Assignment is one "self.<Field> = <Param>" statement of a constructor body.
type Assignment struct {
	Field string
	Param string
}

// Constructor is the generated full-field constructor of a record.
type Constructor struct {
	Record string
	Access decl.Access
	// Required marks the constructor of a specializable reference record:
	// specializations must provide a compatible one.
	Required bool
	Params   []Parameter
	Body     []Assignment
}

// Arity returns the number of constructor parameters.
func (c *Constructor) Arity() int {
	return len(c.Params)
}

// MemberName returns the member name of the constructor.
func (c *Constructor) MemberName() string {
	return "init"
}

// Signature returns e.g. "init(name string, age int)".
func (c *Constructor) Signature() string {
	var sb strings.Builder

	if c.Required {
		sb.WriteString("required ")
	}

	sb.WriteString("init(")

	for i, p := range c.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.String())
	}

	sb.WriteString(")")

	return sb.String()
}

// SynthesizeConstructor builds the constructor for a record from its fields.
// Every representable field yields one parameter and one assignment, in
// declaration order; other fields are left out of both.
func SynthesizeConstructor(d *decl.Declaration, fields []Field) *Constructor {
	c := &Constructor{
		Record:   d.Name,
		Access:   d.Access(),
		Required: d.Kind == decl.KindReference && !d.IsFinal(),
		Params:   []Parameter{},
		Body:     []Assignment{},
	}

	for i := range fields {
		p, ok := BuildParameter(&fields[i])
		if !ok {
			continue
		}

		c.Params = append(c.Params, p)
		c.Body = append(c.Body, Assignment{Field: fields[i].Name, Param: p.Name})
	}

	return c
}
