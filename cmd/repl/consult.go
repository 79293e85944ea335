package main

import (
	"context"
	"fmt"
	"os"

	"github.com/logice/logice/solver"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readFiles reads all files concurrently, returning their contents in the
// same order.
func readFiles(ctx context.Context, filenames []string) ([]string, error) {
	texts := make([]string, len(filenames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bs, err := os.ReadFile(filename)
			if err != nil {
				return err
			}
			texts[i] = string(bs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

// consultAll loads files into the solver in order, stopping at the first
// file with errors.
func consultAll(ctx context.Context, logger *zap.Logger, s *solver.Solver, filenames []string) error {
	if len(filenames) == 0 {
		return nil
	}
	texts, err := readFiles(ctx, filenames)
	if err != nil {
		return fmt.Errorf("consult: %w", err)
	}
	for i, text := range texts {
		if err := s.Consult(text); err != nil {
			return fmt.Errorf("consult %s: %w", filenames[i], err)
		}
		logger.Info("Consulted file", zap.String("file", filenames[i]))
	}
	return nil
}
