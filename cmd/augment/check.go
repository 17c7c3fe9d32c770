package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/load"
	"github.com/syssam/augment/compiler/resolve"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate model files and report warnings without printing a schema",
		ArgsUsage: "<files...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "print-model",
				Usage: "print the normalized model of each file as JSON",
			},
		},
		Action: runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	e := envFrom(ctx)
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	var (
		mu  sync.Mutex
		out = cmd.Root().Writer
	)
	if out == nil {
		out = os.Stdout
	}
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(e.cfg.Jobs, 1))
	for _, in := range inputs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, warnings, err := check(in)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			for _, w := range warnings {
				e.log.Warn("relationship site has no realizations", zap.String("input", in), zap.Error(w))
				printf("%s: warning: %v\n", in, w)
			}
			if cmd.Bool("print-model") {
				b, err := s.MarshalIndent()
				if err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
				printf("%s\n", b)
			}
			printf("%s: ok\n", in)
			return nil
		})
	}
	return eg.Wait()
}

// check loads, validates and resolves a model file.
func check(path string) (*load.Schema, []error, error) {
	s, err := load.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := gen.NewGraph(nil, s)
	if err != nil {
		return nil, nil, err
	}
	sites, err := resolve.Resolve(g)
	if err != nil {
		return nil, nil, err
	}
	return s, sites.Warnings, nil
}
