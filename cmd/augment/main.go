// Command augment compiles object and interface models into augmented
// GraphQL schemas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "augment",
		Usage: "Augment object and interface models into GraphQL API schemas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to augment.yaml (default: ./augment.yaml or $HOME/.config/augment/augment.yaml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: setup,
		After: func(ctx context.Context, _ *cli.Command) error {
			if e := envFrom(ctx); e != nil {
				_ = e.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			compileCommand(),
			checkCommand(),
			versionCommand(),
		},
	}
}

// env holds the state shared by the commands of one invocation.
type env struct {
	cfg *Config
	log *zap.Logger
	run string
}

type envKey struct{}

func envFrom(ctx context.Context) *env {
	e, _ := ctx.Value(envKey{}).(*env)
	return e
}

// setup loads the configuration and builds the logger of the invocation.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	run := uuid.NewString()
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return ctx, err
	}
	log = log.With(zap.String("run", run))
	return context.WithValue(ctx, envKey{}, &env{cfg: cfg, log: log, run: run}), nil
}

// newLogger returns a console logger writing to stderr. Stdout is reserved
// for the printed schema.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = lvl > zapcore.DebugLevel
	return config.Build()
}
