package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"wither-generator/internal/decl"
	"wither-generator/internal/logger"
	"wither-generator/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	// ErrNoDeclarations is returned when nothing was selected for generation.
	ErrNoDeclarations = errors.New("no declarations selected for generation")
	// ErrTypeNotFound is returned when a type requested by name does not exist.
	ErrTypeNotFound = errors.New("type not found")
)

// Options controls which declarations are extracted and how.
type Options struct {
	// Types selects declarations by name instead of by directive. A "*"
	// prefix marks the type as a reference record.
	Types []string
	// UnexportedPrivate marks unexported fields private, so their withers
	// are not generated.
	UnexportedPrivate bool
	// Dir is the working directory for package patterns.
	Dir string
	// BuildTags are passed to the build system as -tags.
	BuildTags []string
}

// Analyzer loads Go packages and extracts declarations from them.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// LoadPackages loads the specified packages and extracts their declarations.
// Patterns are standard Go package patterns (e.g., "./models", "./...").
//
// Type errors are logged and tolerated: a stale generated file must not
// prevent regenerating it. Any other package error fails the load.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*decl.Declaration, error) {
	log := logger.FromContext(ctx)

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.opts.Dir,
	}

	if len(a.opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				log.Warn("type error ignored", "package", pkg.PkgPath, "error", e.Msg, "pos", e.Pos)
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var (
		decls   []*decl.Declaration
		known   []string
		missing map[string]int
	)

	for _, pkg := range pkgs {
		e := newExtractor(pkg.Fset, pkg.Syntax, pkg.Name, pkg.PkgPath, pkg.TypesInfo, a.opts)

		found, err := e.extract()
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		log.Debug("package analyzed", "package", pkg.PkgPath, "declarations", len(found))
		decls = append(decls, found...)
		known = append(known, e.known...)

		if missing == nil {
			missing = make(map[string]int)
		}

		for _, name := range e.missing() {
			missing[name]++
		}
	}

	var notFound []string

	for _, name := range typeNames(a.opts.Types) {
		if missing[name] == len(pkgs) {
			notFound = append(notFound, name)
		}
	}

	if len(notFound) > 0 {
		return nil, notFoundError(notFound, known)
	}

	if len(decls) == 0 {
		return nil, ErrNoDeclarations
	}

	return decls, nil
}

// ParseSource extracts declarations from a single file without type
// information. src follows go/parser.ParseFile: nil reads filename.
func ParseSource(filename string, src any, opts Options) ([]*decl.Declaration, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	e := newExtractor(fset, []*ast.File{f}, f.Name.Name, "", nil, opts)

	decls, err := e.extract()
	if err != nil {
		return nil, err
	}

	if missing := e.missing(); len(missing) > 0 {
		return nil, notFoundError(missing, e.known)
	}

	return decls, nil
}

// notFoundError reports requested types that do not exist, with a hint
// for near misses among the declared ones.
func notFoundError(names, known []string) error {
	parts := make([]string, len(names))

	for i, name := range names {
		parts[i] = name
		if hint := match.DidYouMean(name, known); hint != "" {
			parts[i] += " (" + hint + ")"
		}
	}

	return fmt.Errorf("%w: %s", ErrTypeNotFound, strings.Join(parts, ", "))
}

// typeNames strips reference markers from requested type names.
func typeNames(types []string) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, strings.TrimPrefix(t, "*"))
	}

	return names
}
