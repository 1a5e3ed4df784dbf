// Package cmd implements the wirepath command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wirepath/circuit"
	"wirepath/config"
	"wirepath/routing"
)

const version = "0.3.0"

// globals holds the persistent flags and the settings built from them before
// any subcommand runs.
type globals struct {
	logLevel  string
	obstacles string
	detour    string
	epsilon   float64

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the wirepath command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "wirepath",
		Short: "Route wires through their first crossing with earlier wires",
		Long: `wirepath draws the wires of a circuit in order. A wire whose straight line
meets an already drawn wire is detoured through the crossing point.

Settings are read from WIREPATH_* environment variables; flags override them.

Examples:
  wirepath demo                                  # Route the built in example
  wirepath route board.wires                     # Print routed paths
  wirepath route -f ascii --validate board.json  # Plot and check the result
  wirepath view board.wires                      # Interactive preview`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.obstacles, "obstacles", "", "obstacle mode: segments or paths")
	pf.StringVar(&g.detour, "detour", "", "detour point: intersection or obstacle-start")
	pf.Float64Var(&g.epsilon, "epsilon", 0, "coordinate tolerance")

	root.AddCommand(newRouteCommand(g), newViewCommand(g), newDemoCommand(g))
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the environment configuration, applies flag overrides and
// builds the logger.
func (g *globals) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("obstacles") {
		cfg.ObstacleMode = g.obstacles
	}
	if flags.Changed("detour") {
		cfg.Detour = g.detour
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = g.epsilon
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	g.cfg = cfg
	g.logger = logger
	g.logger.Debug("configuration loaded", zap.Stringer("config", cfg))
	return nil
}

// route routes every wire of the circuit with the configured options.
func (g *globals) route(c *circuit.Circuit) []routing.Result {
	opts := append(g.cfg.RouterOptions(), routing.WithLogger(g.logger.With(zap.String("circuit", c.Name))))
	results := routing.NewRouter(c.Requests(), opts...).RouteAll()

	s := summarize(results)
	g.logger.Info("circuit routed",
		zap.String("circuit", c.Name),
		zap.Int("wires", len(results)),
		zap.Int("detoured", s.detoured),
		zap.Int("rejected", s.rejected),
		zap.Int("skipped", s.skipped))
	return results
}

type summary struct {
	detoured, rejected, skipped int
}

func summarize(results []routing.Result) summary {
	var s summary
	for _, res := range results {
		switch {
		case !res.OK():
			s.rejected++
		case res.Path.Detoured():
			s.detoured++
		}
		s.skipped += len(res.Skipped)
	}
	return s
}

func (s summary) String() string {
	return fmt.Sprintf("detoured: %d | rejected: %d", s.detoured, s.rejected)
}
