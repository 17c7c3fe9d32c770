package augment

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/syssam/augment/compiler/emit"
	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/load"
	"github.com/syssam/augment/compiler/resolve"
	"github.com/syssam/augment/compiler/synth"
)

// Result is the outcome of a successful compile.
type Result struct {
	// Graph is the validated type graph.
	Graph *gen.Graph
	// Sites holds the resolved relationship sites.
	Sites *resolve.Result
	// Document holds the synthesized definitions. It is nil when the
	// printed schema was served from the cache.
	Document *emit.Document
	// Warnings holds non-fatal diagnostics such as abstract fields
	// without realizations.
	Warnings []error
	// Fingerprint identifies the compile inputs. Set only when a cache
	// is configured.
	Fingerprint string
	// Cached reports if the printed schema came from the cache.
	Cached bool

	sdl string
}

// SDL returns the printed schema document.
func (r *Result) SDL() string {
	return r.sdl
}

// WriteTo writes the printed schema document to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.sdl)
	return int64(n), err
}

type options struct {
	log      *zap.Logger
	cache    Cache
	cacheTTL time.Duration
	gen      []gen.Option
}

// Option configures Compile.
type Option func(*options)

// WithLogger sets the logger used by the compile. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCache serves and stores printed schemas in c. Entries expire after
// ttl, or never if ttl is 0.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

// WithGenOptions applies generator options such as gen.WithIndent or
// gen.WithoutFeatures.
func WithGenOptions(opts ...gen.Option) Option {
	return func(o *options) {
		o.gen = append(o.gen, opts...)
	}
}

// Compile validates the model, resolves its relationship sites and
// synthesizes the augmented schema. Fatal problems of one phase are
// reported together as an AggregateError.
func Compile(ctx context.Context, s *load.Schema, opts ...Option) (*Result, error) {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	c, err := gen.NewConfig(o.gen...)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraph(c, s)
	if err != nil {
		return nil, err
	}
	sites, err := resolve.Resolve(g)
	if err != nil {
		return nil, err
	}
	res := &Result{Graph: g, Sites: sites, Warnings: sites.Warnings}
	for _, w := range res.Warnings {
		o.log.Warn("relationship site has no realizations", zap.Error(w))
	}
	o.log.Debug("resolved relationship sites",
		zap.Int("types", len(g.Types)),
		zap.Int("sites", len(sites.Sites())),
	)
	if o.cache != nil {
		if res.Fingerprint, err = Fingerprint(s, c); err != nil {
			return nil, err
		}
		cached, err := o.cache.Get(ctx, res.Fingerprint)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			o.log.Debug("schema served from cache", zap.String("fingerprint", res.Fingerprint))
			res.sdl, res.Cached = string(cached), true
			return res, nil
		}
	}
	doc, err := synth.Synthesize(g, sites, synth.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	if _, err := doc.WriteTo(&b); err != nil {
		return nil, err
	}
	res.Document, res.sdl = doc, b.String()
	if o.cache != nil {
		if err := o.cache.Set(ctx, res.Fingerprint, []byte(res.sdl), o.cacheTTL); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// CompileFile loads the model file at path and compiles it.
func CompileFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	s, err := load.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(ctx, s, opts...)
}
