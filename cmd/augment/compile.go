package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/augment"
	"github.com/syssam/augment/contrib/gobind"
)

// ErrNoInputs is returned when a command is run without model files.
var ErrNoInputs = errors.New("no model files given")

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Aliases:   []string{"c"},
		Usage:     "Compile model files into augmented schemas",
		ArgsUsage: "<files...>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file, or directory when compiling several files (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format (sdl, json)",
			},
			&cli.StringFlag{
				Name:  "go-out",
				Usage: "write Go bindings to this file, or directory when compiling several files",
			},
			&cli.StringFlag{
				Name:  "go-package",
				Usage: "package name of the Go bindings (default: " + gobind.DefaultPackage + ")",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "recompile when a model file changes",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of files compiled in parallel",
			},
		}, featureFlags()...),
		Action: runCompile,
	}
}

func runCompile(ctx context.Context, cmd *cli.Command) error {
	e := envFrom(ctx)
	e.cfg.merge(cmd)
	if err := e.cfg.validate(); err != nil {
		return err
	}
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	c := &compiler{
		cfg:    e.cfg,
		log:    e.log,
		stdout: cmd.Root().Writer,
		multi:  len(inputs) > 1,
		cache:  augment.NewMemoryCache(),
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	err := c.all(ctx, inputs)
	if !cmd.Bool("watch") {
		return err
	}
	if err != nil {
		e.log.Error("initial compile failed", zap.Error(err))
	}
	return c.watch(ctx, inputs)
}

// compiler compiles model files and writes their outputs.
type compiler struct {
	cfg    *Config
	log    *zap.Logger
	cache  augment.Cache
	multi  bool
	mu     sync.Mutex // guards stdout
	stdout io.Writer
}

// all compiles the inputs in parallel, bounded by the configured jobs.
func (c *compiler) all(ctx context.Context, inputs []string) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.cfg.Jobs)
	for _, in := range inputs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return c.one(ctx, in)
			}
		})
	}
	return eg.Wait()
}

// one compiles a single input and writes its outputs.
func (c *compiler) one(ctx context.Context, input string) error {
	log := c.log.With(zap.String("input", input))
	res, err := augment.CompileFile(ctx, input,
		augment.WithLogger(log),
		augment.WithCache(c.cache, 0),
		c.cfg.genOptions(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	out, err := c.render(res)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := c.write(c.path(c.cfg.Out, input, c.ext()), out); err != nil {
		return err
	}
	if c.cfg.GoOut != "" {
		path := c.path(c.cfg.GoOut, input, ".go")
		if err := gobind.New(res.Graph, res.Sites, c.cfg.GoPackage).Write(path); err != nil {
			return err
		}
		log.Debug("wrote go bindings", zap.String("path", path))
	}
	log.Info("compiled schema",
		zap.Int("sites", len(res.Sites.Sites())),
		zap.Int("warnings", len(res.Warnings)),
		zap.Bool("cached", res.Cached),
	)
	return nil
}

// report is the JSON output of a compile.
type report struct {
	Input       string   `json:"input"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Definitions []string `json:"definitions,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Schema      string   `json:"schema"`
}

func (c *compiler) render(res *augment.Result) ([]byte, error) {
	if c.cfg.Format != FormatJSON {
		return []byte(res.SDL()), nil
	}
	r := report{Fingerprint: res.Fingerprint, Schema: res.SDL()}
	if res.Document != nil {
		r.Definitions = res.Document.Names()
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (c *compiler) ext() string {
	if c.cfg.Format == FormatJSON {
		return ".json"
	}
	return ".graphql"
}

// path returns the output path of input. With several inputs, out names a
// directory holding one file per input.
func (c *compiler) path(out, input, ext string) string {
	if out == "" || out == "-" || !c.multi {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(out, base+ext)
}

// write writes b to path, or to stdout if path is empty or "-".
func (c *compiler) write(path string, b []byte) error {
	if path == "" || path == "-" {
		c.mu.Lock()
		defer c.mu.Unlock()
		_, err := c.stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
