package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wither-generator/internal/gen"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Validate records in strict mode without writing files",
	Long: `Run the generator in strict mode and report diagnostics. Unrepresentable
fields, duplicate fields and name collisions make the command fail. With
--up-to-date it also fails when generated files on disk are stale.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("type", "", "comma-separated type names to check")
	checkCmd.Flags().String("manifest", "", "read declarations from a YAML manifest instead of Go packages")
	checkCmd.Flags().Bool("up-to-date", false, "fail when generated files differ from what is on disk")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := state.cfg
	cfg.Strict = true

	src, err := sourceFlags(cmd, args)
	if err != nil {
		return err
	}

	upToDate, err := cmd.Flags().GetBool("up-to-date")
	if err != nil {
		return fmt.Errorf("failed to get up-to-date flag: %w", err)
	}

	p, files, err := render(ctx, cfg, src)
	if p != nil {
		state.out.Diagnostics(p.Diagnostics)
	}

	if err != nil {
		return err
	}

	if err := diagnosticsError(p); err != nil {
		return err
	}

	if upToDate {
		if stale := gen.Stale(files); len(stale) > 0 {
			for _, path := range stale {
				state.out.Stale(path)
			}

			return fmt.Errorf("%d generated file(s) out of date", len(stale))
		}
	}

	state.out.OK(fmt.Sprintf("%d record(s) checked", len(p.Generated())))

	return nil
}
