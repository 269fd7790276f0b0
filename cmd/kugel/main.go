package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pebblebed/kugel/internal/server"
	"github.com/pebblebed/kugel/pkg/config"
)

var (
	verbose bool
	logger  = zap.NewNop()
	rt      config.Runtime
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "kugel",
		Short:        "Pebble-bed reactor geometry deck generator",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			rt, err = config.LoadRuntime()
			if err != nil {
				return err
			}
			logger, err = newLogger(rt.LogLevel, verbose)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(deckCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(heightsCmd())
	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("KUGEL_LOG_LEVEL: %w", err)
	}
	cfg.Level = lvl
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// configArg returns the optional config path argument. Empty means the
// built-in default model.
func configArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func addLoadFlags(cmd *cobra.Command, opts *loadOptions) {
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Override a config value (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.simple, "simple", false, "Build the simplified core")
}

func deckCmd() *cobra.Command {
	var opts deckOptions

	cmd := &cobra.Command{
		Use:   "deck [config]",
		Short: "Build the core and write the geometry deck",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDeck(configArg(args), opts)
		},
	}

	addLoadFlags(cmd, &opts.loadOptions)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&opts.zstd, "zstd", false, "Compress the deck with zstd")
	return cmd
}

func validateCmd() *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "validate [config]",
		Short: "Validate a reactor config and the geometry it produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(configArg(args), opts)
		},
	}

	addLoadFlags(cmd, &opts)
	return cmd
}

func heightsCmd() *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "heights [config]",
		Short: "Print the axial boundaries of the core",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHeights(configArg(args), opts)
		},
	}

	addLoadFlags(cmd, &opts)
	return cmd
}

func traceCmd() *cobra.Command {
	var opts traceOptions

	cmd := &cobra.Command{
		Use:   "trace [config]",
		Short: "Follow one pebble through a sequence of mesh moves",
		Long: `Follow one pebble through a sequence of mesh moves.

The first --move is the starting location. A move prefixed with "+" is a
shuffle: the pebble is discharged and reinserted, which counts as a pass.`,
		Example: "  kugel trace --fuel --group 2 --move c1v1 --move c1v2 --move +c3v1 --power 1500 --days 30",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTrace(configArg(args), opts)
		},
	}

	addLoadFlags(cmd, &opts.loadOptions)
	cmd.Flags().BoolVar(&opts.fuel, "fuel", false, "Trace a fuel pebble instead of a graphite one")
	cmd.Flags().IntVar(&opts.group, "group", 0, "Homogenization group of a fuel pebble")
	cmd.Flags().StringArrayVar(&opts.moves, "move", nil, "Mesh location c<channel>v<volume>, \"+\" prefix for a shuffle (repeatable)")
	cmd.Flags().Float64Var(&opts.temp, "temp", 0, "Pebble temperature (K) applied after each move")
	cmd.Flags().Float64Var(&opts.power, "power", 0, "Pebble power (W) for burnup")
	cmd.Flags().Float64Var(&opts.days, "days", 0, "Days per step for burnup")
	_ = cmd.MarkFlagRequired("move")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "Start the local dev server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if addr == "" {
				addr = rt.Addr
			}
			srv := server.New(configArg(args), addr, logger)
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $KUGEL_ADDR or :8080)")
	return cmd
}
