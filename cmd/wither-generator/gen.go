package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wither-generator/internal/config"
	"wither-generator/internal/gen"
)

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate constructors and withers",
	Long: `Load the given packages (default ".") or a manifest, synthesize a constructor
and withers for every selected record, and write <file>_with.go files.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("type", "", "comma-separated type names to generate (a leading * selects reference records)")
	genCmd.Flags().String("manifest", "", "read declarations from a YAML manifest instead of Go packages")
	genCmd.Flags().Bool("strict", false, "report unrepresentable fields as errors")
	genCmd.Flags().Bool("dry-run", false, "print generated code instead of writing files")
	genCmd.Flags().String("output-dir", "", "write all generated files to this directory")
}

// sourceFlags reads the declaration source flags shared by subcommands.
func sourceFlags(cmd *cobra.Command, args []string) (sourceOptions, error) {
	src := sourceOptions{patterns: args}

	var err error

	if cmd.Flags().Lookup("type") != nil {
		if src.types, err = cmd.Flags().GetString("type"); err != nil {
			return src, fmt.Errorf("failed to get type flag: %w", err)
		}
	}

	if cmd.Flags().Lookup("manifest") != nil {
		if src.manifest, err = cmd.Flags().GetString("manifest"); err != nil {
			return src, fmt.Errorf("failed to get manifest flag: %w", err)
		}
	}

	return src, nil
}

// applyGenFlags sets --strict and --output-dir on the configuration when
// they were given.
func applyGenFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	override := &config.Config{}

	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		strict, err := flags.GetBool("strict")
		if err != nil {
			return fmt.Errorf("failed to get strict flag: %w", err)
		}

		cfg.Strict = strict
	}

	if flags.Lookup("output-dir") != nil && flags.Changed("output-dir") {
		dir, err := flags.GetString("output-dir")
		if err != nil {
			return fmt.Errorf("failed to get output-dir flag: %w", err)
		}

		override.Output.Dir = dir
	}

	return cfg.Merge(override)
}

func runGen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := state.cfg

	if err := applyGenFlags(cmd, cfg); err != nil {
		return err
	}

	src, err := sourceFlags(cmd, args)
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	p, files, err := render(ctx, cfg, src)
	if p != nil {
		state.out.Diagnostics(p.Diagnostics)
	}

	if err != nil {
		return err
	}

	if dryRun {
		for i := range files {
			state.out.File(files[i].Path(), files[i].Content)
		}

		return diagnosticsError(p)
	}

	written, err := gen.WriteFiles(files)
	for _, path := range written {
		state.out.Written(path)
	}

	if err != nil {
		return err
	}

	state.log.Info("generation complete", "files", len(files), "written", len(written))

	return diagnosticsError(p)
}
