package synth

import (
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
)

// Member is a generated declaration to append to a record.
type Member interface {
	MemberName() string
	Signature() string
}

// Result is the outcome of assembling one declaration.
type Result struct {
	Declaration *decl.Declaration
	// Fields are the extracted stored fields, including unrepresentable ones.
	Fields      []Field
	Constructor *Constructor
	Withers     []*Wither
	Diagnostics diagnostic.Diagnostics
}

// Skipped returns true when the declaration is not a record.
func (r *Result) Skipped() bool {
	return r.Declaration == nil || !r.Declaration.Kind.IsRecord()
}

// RepresentableFields returns the fields that take part in generated code.
func (r *Result) RepresentableFields() []Field {
	return representable(r.Fields)
}

// Members returns the generated members in append order: the constructor
// first, then the withers in field order. It is empty for skipped or invalid
// declarations.
func (r *Result) Members() []Member {
	if r.Constructor == nil {
		return nil
	}

	members := make([]Member, 0, 1+len(r.Withers))
	members = append(members, r.Constructor)

	for _, w := range r.Withers {
		members = append(members, w)
	}

	return members
}

// Assemble synthesizes the members of one declaration. Declarations that are
// not records produce an empty result; declarations failing validation
// produce diagnostics and no members.
func Assemble(d *decl.Declaration, opts Options) *Result {
	res := &Result{Declaration: d}
	if res.Skipped() {
		return res
	}

	res.Fields = Extract(d.Members)

	res.Diagnostics = Validate(d, res.Fields, opts)
	if res.Diagnostics.HasErrors() {
		return res
	}

	res.Constructor = SynthesizeConstructor(d, res.Fields)

	access := d.Access()
	for i := range res.Fields {
		if w, ok := SynthesizeWither(d, res.Fields, access, i); ok {
			res.Withers = append(res.Withers, w)
		}
	}

	return res
}
