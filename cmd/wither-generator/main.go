// Package main provides the CLI entrypoint for wither-generator.
//
// wither-generator is a Go codegen tool that:
//   - Finds struct types marked with //wither:generate (or named with -type)
//   - Synthesizes a full-field constructor for each record
//   - Synthesizes one wither per non-private field (WithName, WithAge, ...)
//   - Writes gofmt-formatted <file>_with.go companions next to the sources
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wither-generator/internal/config"
	"wither-generator/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds the state shared by all subcommands, set up before each run.
type app struct {
	cfg *config.Config
	log logger.Logger
	out *printer
}

var state = &app{}

var rootCmd = &cobra.Command{
	Use:   "wither-generator",
	Short: "Generate constructors and withers for Go structs",
	Long: `wither-generator reads struct types marked with //wither:generate and writes
a full-field constructor plus one With<Field> method per field next to them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().String("config", "", "config file (default: wither.yaml, .wither.yaml or wither.toml found upwards)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "log in JSON format")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// applyLogFlags overrides the log settings of cfg with the --log-level and
// --log-json flags the user set explicitly.
// Booleans are assigned directly: a merge cannot override with false.
func applyLogFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	override := &config.Config{}

	if flags.Changed("log-level") {
		level, err := flags.GetString("log-level")
		if err != nil {
			return fmt.Errorf("failed to get log-level flag: %w", err)
		}

		override.Log.Level = level
	}

	if flags.Changed("log-json") {
		logJSON, err := flags.GetBool("log-json")
		if err != nil {
			return fmt.Errorf("failed to get log-json flag: %w", err)
		}

		cfg.Log.JSON = logJSON
	}

	return cfg.Merge(override)
}

// setup loads the configuration, applies the global flags and installs the
// logger into the command context.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(configPath, ".")
	if err != nil {
		return err
	}

	if err := applyLogFlags(flags, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	out, err := newPrinter(cmd.OutOrStdout(), colorMode)
	if err != nil {
		return err
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	logger.SetDefault(log)

	state.cfg = cfg
	state.log = log
	state.out = out

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(logger.ContextWithLogger(ctx, log))

	if cfg.Path != "" {
		log.Debug("configuration loaded", "file", cfg.Path)
	}

	return nil
}
