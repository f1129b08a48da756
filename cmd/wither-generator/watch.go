package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wither-generator/internal/config"
	"wither-generator/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [packages]",
	Short: "Regenerate whenever sources change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("type", "", "comma-separated type names to generate")
	watchCmd.Flags().String("manifest", "", "read declarations from a YAML manifest instead of Go packages")
	watchCmd.Flags().Bool("strict", false, "report unrepresentable fields as errors")
	watchCmd.Flags().Bool("dry-run", false, "print generated code instead of writing files")
	watchCmd.Flags().String("output-dir", "", "write all generated files to this directory")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := applyGenFlags(cmd, state.cfg); err != nil {
		return err
	}

	src, err := sourceFlags(cmd, args)
	if err != nil {
		return err
	}

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	decls, err := loadDeclarations(ctx, state.cfg, src)
	if err != nil {
		return err
	}

	dirs := sourceDirs(decls, src.manifest)
	if state.cfg.Path != "" {
		dirs = append(dirs, state.cfg.Dir())
	}

	w := watch.New(dirs, watch.Options{Suffix: state.cfg.Output.Suffix, Debounce: debounce}, func(context.Context) error {
		// Pick up edits to the configuration file between passes.
		if path := state.cfg.Path; path != "" {
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}

			if err := applyLogFlags(cmd.Root().PersistentFlags(), cfg); err != nil {
				return err
			}

			state.cfg = cfg
		}

		return runGen(cmd, args)
	})

	return w.Run(ctx)
}
