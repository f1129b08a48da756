package synth

import (
	"wither-generator/internal/decl"
)

// blankIdent cannot be assigned to or read back, so it never names a field.
const blankIdent = "_"

// Field describes one stored member of a record.
type Field struct {
	Name            string
	Type            string
	IsMutable       bool
	IsPrivate       bool
	HasDefaultValue bool
	// Index is the member's position in the declaration's member list.
	Index int
}

// HasIdentifier returns true if the field name can be referenced.
func (f *Field) HasIdentifier() bool {
	return f.Name != "" && f.Name != blankIdent
}

// HasType returns true if the field carries a type annotation.
func (f *Field) HasType() bool {
	return f.Type != ""
}

// Representable reports whether the field takes part in generated code.
// The constructor parameters, the constructor assignments and every wither
// call all use this one predicate.
func (f *Field) Representable() bool {
	return f.HasIdentifier() && f.HasType()
}

// Extract returns the stored fields of a member list in declaration order.
// Non-field members and computed fields are skipped.
func Extract(members []decl.Member) []Field {
	var fields []Field

	for i := range members {
		m := &members[i]
		if m.Kind != decl.MemberField || m.HasAccessor {
			continue
		}

		fields = append(fields, Field{
			Name:            m.Name,
			Type:            m.Type,
			IsMutable:       m.Mutable,
			IsPrivate:       m.HasModifier(decl.ModPrivate) || m.HasModifier(decl.ModFilePrivate),
			HasDefaultValue: m.Initializer != "",
			Index:           i,
		})
	}

	return fields
}

// representable filters fields down to the representable ones, keeping order.
func representable(fields []Field) []Field {
	out := make([]Field, 0, len(fields))

	for i := range fields {
		if fields[i].Representable() {
			out = append(out, fields[i])
		}
	}

	return out
}
