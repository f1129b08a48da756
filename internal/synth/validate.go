package synth

import (
	"fmt"
	"strconv"

	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
)

// Options controls validation during assembly.
type Options struct {
	// Strict reports unrepresentable fields as errors instead of leaving
	// them out silently.
	Strict bool
}

// Validate checks a record's fields before synthesis.
//
// Duplicate field names are always errors: the generated members would
// collide. Unrepresentable fields are errors only in strict mode.
func Validate(d *decl.Declaration, fields []Field, opts Options) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	seen := make(map[string]int)

	for i := range d.Members {
		m := &d.Members[i]
		if m.Kind != decl.MemberField || m.Name == "" || m.Name == blankIdent {
			continue
		}

		if first, ok := seen[m.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateField,
				fmt.Sprintf("field %q declared at members %d and %d", m.Name, first, i),
				d.String(), m.Name, "rename one of the fields")

			continue
		}

		seen[m.Name] = i
	}

	if !opts.Strict {
		return res
	}

	for i := range fields {
		f := &fields[i]

		switch {
		case !f.HasIdentifier():
			res.AddError(diagnostic.CodeUnrepresentableField,
				"field has no identifier and cannot be passed to the constructor",
				d.String(), fieldRef(f), "give the field an explicit name or mark it computed")
		case !f.HasType():
			res.AddError(diagnostic.CodeUnrepresentableField,
				"field has no type annotation and cannot be passed to the constructor",
				d.String(), fieldRef(f), "annotate the field type")
		}
	}

	return res
}

// fieldRef names a field for diagnostics, falling back to its position.
func fieldRef(f *Field) string {
	if f.HasIdentifier() {
		return f.Name
	}

	if f.Type != "" {
		return "#" + strconv.Itoa(f.Index) + " (" + f.Type + ")"
	}

	return "#" + strconv.Itoa(f.Index)
}
