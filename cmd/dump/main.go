package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/logice/logice/engine"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputFilename string
	asJSON        bool
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "dump",
	Short:        "Print the compiled cells, symbols and clauses of a program",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config = zap.NewDevelopmentConfig()
		}
		var err error
		logger, err = config.Build()
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
	RunE: func(cmd *cobra.Command, args []string) error {
		bs, err := os.ReadFile(inputFilename)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		return dump(cmd.OutOrStdout(), engine.New(engine.WithLogger(logger)), string(bs), asJSON)
	},
}

func init() {
	rootCmd.Flags().StringVar(&inputFilename, "input", "", "Input file (required)")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the program as JSON")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.MarkFlagRequired("input")
}

func dump(w io.Writer, e *engine.Engine, text string, asJSON bool) error {
	prog, err := e.Load(text)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if !asJSON {
		return prog.Dump(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(prog)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
