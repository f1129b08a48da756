package decl

import (
	"fmt"
	"slices"
	"strings"

	"wither-generator/internal/common"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go
//go:generate go tool stringer -type=MemberKind -linecomment -output=member_kind_string.go

// Kind classifies a declaration.
type Kind int

const (
	KindUnknown   Kind = iota // unknown
	KindValue                 // value
	KindReference             // reference
	KindEnum                  // enum
	KindInterface             // interface
	KindAlias                 // alias
)

// IsRecord returns true for value and reference aggregates.
func (k Kind) IsRecord() bool {
	return k == KindValue || k == KindReference
}

// ParseKind parses a kind name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := KindUnknown; k <= KindAlias; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	// Accepted spellings from other declaration vocabularies.
	switch s {
	case "struct":
		return KindValue, nil
	case "class", "ref", "pointer":
		return KindReference, nil
	}

	return KindUnknown, fmt.Errorf("unknown declaration kind %q", s)
}

// MemberKind classifies a declaration member.
type MemberKind int

const (
	MemberUnknown MemberKind = iota // unknown
	MemberField                     // field
	MemberMethod                    // method
	MemberType                      // type
)

// ParseMemberKind parses a member kind name. The empty string means field.
func ParseMemberKind(s string) (MemberKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MemberField, nil
	}

	for k := MemberUnknown; k <= MemberType; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return MemberUnknown, fmt.Errorf("unknown member kind %q", s)
}

// Modifier is a declaration or member modifier keyword.
type Modifier string

const (
	ModPublic      Modifier = "public"
	ModInternal    Modifier = "internal"
	ModPrivate     Modifier = "private"
	ModFilePrivate Modifier = "fileprivate"
	ModFinal       Modifier = "final"
)

// Access is the access level applied to generated members.
type Access int

const (
	AccessDefault Access = iota
	AccessInternal
	AccessPublic
)

// String returns a human-readable representation of the Access.
func (a Access) String() string {
	switch a {
	case AccessDefault:
		return "default"
	case AccessInternal:
		return "internal"
	case AccessPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// Member is one entry of a declaration body, in declaration order.
type Member struct {
	Kind MemberKind
	// Name is the member identifier. Empty when the member has no resolvable
	// identifier (e.g., an unnamed manifest member).
	Name string
	// Type is the declared type, an opaque token. Empty when not annotated.
	Type        string
	Mutable     bool
	Modifiers   []Modifier
	Initializer string // initial value expression, if any
	HasAccessor bool   // computed member: accessor logic instead of stored state
}

// HasModifier returns true if the member carries the modifier.
func (m *Member) HasModifier(mod Modifier) bool {
	return slices.Contains(m.Modifiers, mod)
}

// TypeParam is one type parameter of a generic declaration.
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// Import is a package referenced by member types.
type Import struct {
	Name string `yaml:"name,omitempty"` // explicit import name, empty if none
	Path string `yaml:"path"`
}

// Declaration is a type declaration handed over by a declaration source.
// It is treated as immutable once built.
type Declaration struct {
	Name       string
	Kind       Kind
	Modifiers  []Modifier
	TypeParams []TypeParam
	Members    []Member
	Imports    []Import

	// Reserved lists identifiers already declared in the record's package
	// scope. Generated package-level names must not reuse them.
	Reserved []string

	PkgPath string // import path of the declaring package
	PkgName string // package name used in generated files
	File    string // source file, empty for manifest declarations
	Dir     string // directory generated files are written to
	Line    int    // line of the declaration in File
}

// HasModifier returns true if the declaration carries the modifier.
func (d *Declaration) HasModifier(mod Modifier) bool {
	return slices.Contains(d.Modifiers, mod)
}

// Access returns the declaration's own public/internal access level, or
// AccessDefault when it declares neither.
func (d *Declaration) Access() Access {
	switch {
	case d.HasModifier(ModPublic):
		return AccessPublic
	case d.HasModifier(ModInternal):
		return AccessInternal
	default:
		return AccessDefault
	}
}

// IsFinal returns true if the declaration cannot be specialized further.
func (d *Declaration) IsFinal() bool {
	return d.HasModifier(ModFinal)
}

// MemberNames returns the names of all members of the given kind, in order.
func (d *Declaration) MemberNames(kind MemberKind) []string {
	var names []string

	for i := range d.Members {
		if d.Members[i].Kind == kind && d.Members[i].Name != "" {
			names = append(names, d.Members[i].Name)
		}
	}

	return names
}

// Location returns "file:line" for source declarations and the plain name
// otherwise.
func (d *Declaration) Location() string {
	if d.File == "" {
		return d.Name
	}

	if d.Line > 0 {
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	}

	return d.File
}

// String returns the qualified declaration name (e.g., "models.User").
func (d *Declaration) String() string {
	if d.PkgName == "" {
		return d.Name
	}

	return d.PkgName + "." + d.Name
}
