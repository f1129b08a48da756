package synth

import (
	"wither-generator/internal/decl"
)

func field(name, typ string, mods ...decl.Modifier) decl.Member {
	return decl.Member{Kind: decl.MemberField, Name: name, Type: typ, Modifiers: mods}
}

func mutableField(name, typ string, mods ...decl.Modifier) decl.Member {
	m := field(name, typ, mods...)
	m.Mutable = true

	return m
}

func computedField(name, typ string) decl.Member {
	m := field(name, typ)
	m.HasAccessor = true

	return m
}

// userDecl is a value record with a public mutable name and a private
// immutable age.
func userDecl(extra ...decl.Member) *decl.Declaration {
	members := []decl.Member{
		mutableField("name", "String", decl.ModPublic),
		field("age", "Int", decl.ModPrivate),
	}

	return &decl.Declaration{
		Name:    "User",
		Kind:    decl.KindValue,
		Members: append(members, extra...),
	}
}

func paramNames(ps []Parameter) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}

	return names
}
