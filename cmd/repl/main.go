package main

import (
	"fmt"
	"io"
	"os"

	"github.com/logice/logice/config"
	"github.com/logice/logice/engine"
	"github.com/logice/logice/solver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile   string
	consultFiles []string
	query        string
	interactive  bool
	verbose      bool
	maxSteps     int
	traceFile    string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive logic query shell",
	Long: `repl consults programs written as S-expressions and answers queries
against them.

	(parent (tom bob))
	(grandparent (X Z) ((parent (X Y)) (parent (Y Z))))

At the ?- prompt, enter a goal like (grandparent (tom Who)). After each
answer, type ; for the next one or . to stop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig = zap.NewDevelopmentConfig()
		}
		zapConfig.Level = level
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "logice.yaml", "YAML config file")
	rootCmd.Flags().StringSliceVar(&consultFiles, "consult", nil, "Files to consult, in order")
	rootCmd.Flags().StringVar(&query, "query", "", "Initial query to issue")
	rootCmd.Flags().BoolVar(&interactive, "interactive", true, "Whether the REPL is interactive")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and search traces")
	rootCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum clause attempts per query (0 for unlimited)")
	rootCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write a JSON-lines search trace to this file")
}

// applyFlags overrides config values with flags set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("consult") {
		cfg.ConsultFiles = append(cfg.ConsultFiles, consultFiles...)
	}
	if flags.Changed("max-steps") {
		cfg.Engine.MaxSteps = maxSteps
	}
	if flags.Changed("trace-file") {
		cfg.Logging.TraceFile = traceFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

func run(cmd *cobra.Command, args []string) error {
	if !interactive && query == "" {
		return fmt.Errorf("no query provided for non-interactive REPL")
	}
	opts := append(cfg.EngineOptions(), engine.WithLogger(logger.Named("engine")))
	tracer, closeTracer, err := newTracer(cfg)
	if err != nil {
		return err
	}
	defer closeTracer()
	if tracer != nil {
		opts = append(opts, engine.WithTracer(tracer))
	}

	s := solver.New(opts...)
	if err := consultAll(cmd.Context(), logger, s, cfg.ConsultFiles); err != nil {
		return err
	}
	if !interactive {
		return runOnce(cmd.OutOrStdout(), s, query)
	}
	r, err := newREPL(s, cfg, logger)
	if err != nil {
		return err
	}
	defer r.close()
	return r.mainLoop(query)
}

func newTracer(cfg *config.Config) (engine.Tracer, func(), error) {
	if cfg.Logging.TraceFile != "" {
		f, err := os.Create(cfg.Logging.TraceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		return engine.NewJSONTracer(f), func() { f.Close() }, nil
	}
	if verbose {
		return engine.NewLogTracer(logger), func() {}, nil
	}
	return nil, func() {}, nil
}

// runOnce prints every solution of goal.
func runOnce(w io.Writer, s *solver.Solver, goal string) error {
	solutions, cancel := s.Query(trimQuery(goal))
	defer cancel()
	hasSolutions := false
	for result := range solutions {
		if result.Err != nil {
			return result.Err
		}
		hasSolutions = true
		fmt.Fprintln(w, result.Solution)
	}
	if !hasSolutions {
		fmt.Fprintln(w, "false.")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
