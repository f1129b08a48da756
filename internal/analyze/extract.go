package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// extractor turns the syntax of one package into declarations.
type extractor struct {
	fset    *token.FileSet
	files   []*ast.File
	pkgName string
	pkgPath string
	info    *types.Info // nil when parsing without type information
	opts    Options

	// selected maps explicitly requested type names to "reference" flags.
	selected map[string]bool
	found    map[string]bool
	// known lists every type declared in the package, for hints.
	known []string
}

func newExtractor(fset *token.FileSet, files []*ast.File, pkgName, pkgPath string, info *types.Info, opts Options) *extractor {
	e := &extractor{
		fset:     fset,
		pkgName:  pkgName,
		pkgPath:  pkgPath,
		info:     info,
		opts:     opts,
		selected: make(map[string]bool),
		found:    make(map[string]bool),
	}

	for _, name := range opts.Types {
		ref := strings.HasPrefix(name, "*")
		e.selected[strings.TrimPrefix(name, "*")] = ref
	}

	for _, f := range files {
		if !isOwnOutput(f) {
			e.files = append(e.files, f)
		}
	}

	return e
}

// isOwnOutput reports whether a file was written by the generator.
func isOwnOutput(f *ast.File) bool {
	for _, g := range f.Comments {
		if g.Pos() >= f.Package {
			return false
		}

		for _, c := range g.List {
			if c.Text == common.GeneratedHeader {
				return true
			}
		}
	}

	return false
}

// extract returns the selected declarations in source order.
func (e *extractor) extract() ([]*decl.Declaration, error) {
	methods := e.collectMethods()
	reserved := e.collectReserved()

	var decls []*decl.Declaration

	for _, f := range e.files {
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				e.known = append(e.known, ts.Name.Name)

				groups := []*ast.CommentGroup{ts.Doc}
				if len(gd.Specs) == 1 {
					groups = append(groups, gd.Doc)
				}

				dir, err := parseDirective(groups...)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", e.fset.Position(ts.Pos()), err)
				}

				ref, explicit := e.selected[ts.Name.Name]
				if len(e.selected) > 0 && !explicit {
					continue
				}

				if len(e.selected) == 0 && !dir.present {
					continue
				}

				e.found[ts.Name.Name] = true

				dc, err := e.declaration(f, ts, ref || dir.ref, dir.final)
				if err != nil {
					return nil, err
				}

				dc.Members = append(dc.Members, methods[ts.Name.Name]...)
				dc.Reserved = reserved
				decls = append(decls, dc)
			}
		}
	}

	return decls, nil
}

// missing returns explicitly requested type names that were not found.
func (e *extractor) missing() []string {
	var names []string

	for name := range e.selected {
		if !e.found[name] {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// declaration converts one type spec.
func (e *extractor) declaration(f *ast.File, ts *ast.TypeSpec, ref, final bool) (*decl.Declaration, error) {
	pos := e.fset.Position(ts.Pos())

	d := &decl.Declaration{
		Name:    ts.Name.Name,
		PkgName: e.pkgName,
		PkgPath: e.pkgPath,
		File:    pos.Filename,
		Dir:     filepath.Dir(pos.Filename),
		Line:    pos.Line,
	}

	if ts.Name.IsExported() {
		d.Modifiers = append(d.Modifiers, decl.ModPublic)
	}

	if final {
		d.Modifiers = append(d.Modifiers, decl.ModFinal)
	}

	if ts.TypeParams != nil {
		for _, tp := range ts.TypeParams.List {
			constraint := types.ExprString(tp.Type)
			for _, n := range tp.Names {
				d.TypeParams = append(d.TypeParams, decl.TypeParam{Name: n.Name, Constraint: constraint})
			}
		}
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		d.Kind = decl.KindValue
		if ref {
			d.Kind = decl.KindReference
		}

		imports := make(map[string]decl.Import)

		for _, field := range t.Fields.List {
			members, err := e.fieldMembers(field)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.fset.Position(field.Pos()), err)
			}

			d.Members = append(d.Members, members...)
			e.collectImports(f, field.Type, imports)
		}

		d.Imports = sortedImports(imports)

	case *ast.InterfaceType:
		d.Kind = decl.KindInterface

	default:
		d.Kind = decl.KindAlias
	}

	return d, nil
}

// fieldMembers converts one struct field entry; "a, b int" yields two members.
func (e *extractor) fieldMembers(field *ast.Field) ([]decl.Member, error) {
	ft, err := parseFieldTag(field.Tag)
	if err != nil {
		return nil, err
	}

	typ := types.ExprString(field.Type)

	// An embedded field is named after its type: *pkg.Base[T] is Base.
	if len(field.Names) == 0 {
		name := embeddedName(field.Type)
		return []decl.Member{e.member(name, typ, ft, token.IsExported(name))}, nil
	}

	members := make([]decl.Member, 0, len(field.Names))
	for _, n := range field.Names {
		members = append(members, e.member(n.Name, typ, ft, n.IsExported()))
	}

	return members, nil
}

// embeddedName returns the implicit field name of an embedded type, or ""
// when the expression is not a valid embedded type.
func embeddedName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.SelectorExpr:
			return t.Sel.Name
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

func (e *extractor) member(name, typ string, ft fieldTag, exported bool) decl.Member {
	m := decl.Member{
		Kind:        decl.MemberField,
		Name:        name,
		Type:        typ,
		Mutable:     !ft.readonly,
		Initializer: ft.defaultExpr,
		HasAccessor: ft.computed,
	}

	switch {
	case ft.private:
		m.Modifiers = append(m.Modifiers, decl.ModPrivate)
	case ft.public:
		m.Modifiers = append(m.Modifiers, decl.ModPublic)
	case name == "":
	case exported:
		m.Modifiers = append(m.Modifiers, decl.ModPublic)
	case e.opts.UnexportedPrivate:
		m.Modifiers = append(m.Modifiers, decl.ModPrivate)
	}

	return m
}

// collectMethods maps receiver type names to their method members, in
// source order.
func (e *extractor) collectMethods() map[string][]decl.Member {
	methods := make(map[string][]decl.Member)

	for _, f := range e.files {
		for _, d := range f.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}

			recv := receiverTypeName(fd.Recv.List[0].Type)
			if recv == "" {
				continue
			}

			methods[recv] = append(methods[recv], decl.Member{
				Kind: decl.MemberMethod,
				Name: fd.Name.Name,
			})
		}
	}

	return methods
}

// collectReserved returns the sorted package-level identifiers.
func (e *extractor) collectReserved() []string {
	seen := make(map[string]bool)

	for _, f := range e.files {
		for _, d := range f.Decls {
			switch d := d.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					seen[d.Name.Name] = true
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						seen[s.Name.Name] = true
					case *ast.ValueSpec:
						for _, n := range s.Names {
							seen[n.Name] = true
						}
					}
				}
			}
		}
	}

	delete(seen, "_")
	delete(seen, "init")

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// receiverTypeName returns T for receivers T, *T, T[K] and *T[K].
func receiverTypeName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// collectImports records the packages referenced by a type expression.
func (e *extractor) collectImports(f *ast.File, expr ast.Expr, into map[string]decl.Import) {
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		if imp, ok := e.resolveImport(f, id); ok {
			into[imp.Path] = imp
		}

		return false
	})
}

// resolveImport finds the import an identifier refers to, preferring type
// information and falling back to the file's import specs.
func (e *extractor) resolveImport(f *ast.File, id *ast.Ident) (decl.Import, bool) {
	if e.info != nil {
		if pn, ok := e.info.Uses[id].(*types.PkgName); ok {
			imp := decl.Import{Path: pn.Imported().Path()}
			if pn.Name() != pn.Imported().Name() {
				imp.Name = pn.Name()
			}

			return imp, true
		}
	}

	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		if spec.Name != nil {
			if spec.Name.Name == id.Name {
				return decl.Import{Name: spec.Name.Name, Path: path}, true
			}

			continue
		}

		if common.PkgNameGuess(path) == id.Name {
			return decl.Import{Path: path}, true
		}
	}

	return decl.Import{}, false
}

func sortedImports(m map[string]decl.Import) []decl.Import {
	imports := make([]decl.Import, 0, len(m))
	for _, imp := range m {
		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b decl.Import) int {
		return strings.Compare(a.Path, b.Path)
	})

	return imports
}
