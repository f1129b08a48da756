package gen

import (
	"go/ast"
	"go/parser"
	"slices"
	"strings"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// typeParamList returns the declaration form, e.g. "[K comparable, V any]".
func typeParamList(tps []decl.TypeParam) string {
	if len(tps) == 0 {
		return ""
	}

	parts := make([]string, len(tps))
	for i, tp := range tps {
		constraint := tp.Constraint
		if constraint == "" {
			constraint = "any"
		}

		parts[i] = tp.Name + " " + constraint
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// typeArgList returns the instantiation form, e.g. "[K, V]".
func typeArgList(tps []decl.TypeParam) string {
	if len(tps) == 0 {
		return ""
	}

	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// collectImports returns the imports of the records that the generated
// parameter types actually reference, sorted by path.
func collectImports(records []*recordData) []importSpec {
	used := make(map[string]bool)
	for _, r := range records {
		for _, t := range r.Types {
			for name := range packageRefs(t) {
				used[name] = true
			}
		}
	}

	seen := make(map[string]bool)

	var specs []importSpec

	for _, r := range records {
		for _, imp := range r.Imports {
			if seen[imp.Path] || !used[localName(imp)] {
				continue
			}

			seen[imp.Path] = true
			specs = append(specs, importSpec{Alias: imp.Name, Path: imp.Path})
		}
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return specs
}

// localName is the identifier an import is referred to by.
func localName(imp decl.Import) string {
	if imp.Name != "" {
		return imp.Name
	}

	return common.PkgNameGuess(imp.Path)
}

// packageRefs returns the package qualifiers used by a type expression,
// e.g. {"time", "uuid"} for "map[uuid.UUID]time.Time". Types that do not
// parse yield nothing.
func packageRefs(typ string) map[string]bool {
	refs := make(map[string]bool)

	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return refs
	}

	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				refs[id.Name] = true
			}

			return false
		}

		return true
	})

	return refs
}
