package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"wither-generator/internal/analyze"
	"wither-generator/internal/config"
	"wither-generator/internal/decl"
	"wither-generator/internal/gen"
	"wither-generator/internal/logger"
	"wither-generator/internal/plan"
)

// sourceOptions selects where declarations come from.
type sourceOptions struct {
	patterns []string
	types    string
	manifest string
}

// loadDeclarations reads declarations from a manifest, or from Go packages.
func loadDeclarations(ctx context.Context, cfg *config.Config, src sourceOptions) ([]*decl.Declaration, error) {
	if src.manifest != "" {
		decls, err := decl.LoadManifest(src.manifest)
		if err != nil {
			return nil, err
		}

		logger.FromContext(ctx).Debug("manifest loaded", "file", src.manifest, "declarations", len(decls))

		return decls, nil
	}

	patterns := src.patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer(analyze.Options{
		Types:             splitList(src.types),
		UnexportedPrivate: cfg.PrivateUnexported,
	})

	return analyzer.LoadPackages(ctx, patterns...)
}

// resolvePlan assembles the declarations.
func resolvePlan(ctx context.Context, cfg *config.Config, decls []*decl.Declaration) (*plan.ResolvedPlan, error) {
	rc := plan.DefaultConfig()
	rc.StrictMode = cfg.Strict

	return plan.NewResolver(decls, rc).Resolve(ctx)
}

// newGenerator configures code generation from cfg.
func newGenerator(cfg *config.Config) *gen.Generator {
	return gen.NewGenerator(gen.GeneratorConfig{
		Suffix:            cfg.Output.Suffix,
		OutputDir:         cfg.Output.Dir,
		GenerateComments:  cfg.Output.Comments,
		ConstructorPrefix: cfg.Naming.ConstructorPrefix,
		WitherPrefix:      cfg.Naming.WitherPrefix,
		ResultVar:         cfg.Naming.ResultVar,
	})
}

// render runs the whole pipeline in memory.
func render(ctx context.Context, cfg *config.Config, src sourceOptions) (*plan.ResolvedPlan, []gen.GeneratedFile, error) {
	decls, err := loadDeclarations(ctx, cfg, src)
	if err != nil {
		return nil, nil, err
	}

	p, err := resolvePlan(ctx, cfg, decls)
	if err != nil {
		return nil, nil, err
	}

	files, err := newGenerator(cfg).Generate(ctx, p)
	if err != nil {
		return p, nil, err
	}

	return p, files, nil
}

// sourceDirs returns the directories holding the given declarations and
// the manifest, for watching.
func sourceDirs(decls []*decl.Declaration, manifest string) []string {
	seen := make(map[string]bool)

	var dirs []string

	add := func(dir string) {
		if dir == "" {
			dir = "."
		}

		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if manifest != "" {
		add(filepath.Dir(manifest))
	}

	for _, d := range decls {
		if d.File != "" {
			add(filepath.Dir(d.File))
		} else if manifest == "" {
			add(d.Dir)
		}
	}

	return dirs
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// diagnosticsError summarizes error diagnostics for the exit status.
func diagnosticsError(p *plan.ResolvedPlan) error {
	if p == nil || p.Diagnostics.IsValid() {
		return nil
	}

	return fmt.Errorf("%d declaration error(s)", len(p.Diagnostics.Errors))
}
