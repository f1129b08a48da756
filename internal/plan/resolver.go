package plan

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/logger"
	"wither-generator/internal/synth"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// StrictMode reports unrepresentable fields as errors.
	StrictMode bool
	// MaxWorkers bounds concurrent assembly; zero or less uses GOMAXPROCS.
	MaxWorkers int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		StrictMode: false,
		MaxWorkers: runtime.GOMAXPROCS(0),
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	decls  []*decl.Declaration
	config ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(decls []*decl.Declaration, config ResolutionConfig) *Resolver {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.GOMAXPROCS(0)
	}

	return &Resolver{
		decls:  decls,
		config: config,
	}
}

// Resolve assembles every declaration and returns the resolved plan.
// Declarations are independent, so they are assembled concurrently; the
// result order always equals the input order.
func (r *Resolver) Resolve(ctx context.Context) (*ResolvedPlan, error) {
	log := logger.FromContext(ctx)
	opts := synth.Options{Strict: r.config.StrictMode}
	results := make([]*synth.Result, len(r.decls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxWorkers)

	for i, d := range r.decls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = synth.Assemble(d, opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolution interrupted: %w", err)
	}

	plan := &ResolvedPlan{Records: results}

	for _, res := range results {
		d := res.Declaration
		if d == nil {
			continue
		}

		if res.Skipped() {
			log.Debug("declaration skipped", "declaration", d.String(), "kind", d.Kind.String())
			plan.Diagnostics.AddInfo(diagnostic.CodeUnsupportedKind,
				fmt.Sprintf("%s declarations are not records; nothing generated", d.Kind),
				d.String(), "")

			continue
		}

		plan.Diagnostics.Merge(res.Diagnostics)

		if res.Constructor == nil {
			log.Warn("declaration rejected", "declaration", d.String(), "errors", len(res.Diagnostics.Errors))
			continue
		}

		log.Debug("declaration planned",
			"declaration", d.String(),
			"fields", res.Constructor.Arity(),
			"withers", len(res.Withers))
	}

	return plan, nil
}
