// Package synth synthesizes the schema definitions of a resolved type graph.
//
// For every relationship site it builds a Bundle: the relationship and
// connection objects, the filter, sort and aggregate inputs and the nested
// mutation inputs. Sites declared on interfaces whose realizations carry
// attribute records get a properties union and an edge input family keyed
// by attribute record name. Relationships targeting an interface are keyed
// by concrete target type name through Implementations. The two keyings are
// independent.
package synth

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/syssam/augment/compiler/emit"
	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/resolve"
)

// Synthesizer builds the schema document of a graph. A synthesizer is
// bound to one compile and is not safe for concurrent use.
type Synthesizer struct {
	graph    *gen.Graph
	sites    *resolve.Result
	registry *Registry
	log      *zap.Logger

	bundles   map[*resolve.Site]*Bundle
	realizers map[resolve.Key]*WriteInputs
	impls     map[*gen.Type]*Implementations
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a synthesizer for the resolved graph.
func New(g *gen.Graph, sites *resolve.Result, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		graph:     g,
		sites:     sites,
		registry:  NewRegistry(g.Config),
		log:       zap.NewNop(),
		bundles:   make(map[*resolve.Site]*Bundle),
		realizers: make(map[resolve.Key]*WriteInputs),
		impls:     make(map[*gen.Type]*Implementations),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the schema document of the resolved graph.
func Synthesize(g *gen.Graph, sites *resolve.Result, opts ...Option) (*emit.Document, error) {
	return New(g, sites, opts...).Synthesize()
}

// Registry returns the attribute registry of the synthesizer.
func (s *Synthesizer) Registry() *Registry {
	return s.registry
}

// Synthesize builds the schema document.
func (s *Synthesizer) Synthesize() (*emit.Document, error) {
	w := &writer{doc: emit.NewDocument(s.config())}
	for _, sc := range s.graph.Scalars() {
		w.add(helpers[sc.String()]())
	}
	for _, t := range s.graph.Properties() {
		w.add(s.registry.Family(t).Definitions()...)
	}
	for _, site := range s.sites.Sites() {
		b := s.Bundle(site)
		s.log.Debug("synthesized relationship site",
			zap.String("site", site.Name()),
			zap.Bool("polymorphic", site.Polymorphic()),
			zap.Int("realizations", len(site.Realizations)),
			zap.Int("attributes", len(b.Attributes)),
		)
		w.add(b.All()...)
	}
	for _, c := range s.graph.Nodes() {
		for _, f := range s.relationships(c) {
			if site := s.siteOf(c, f); site.Owner != c {
				w.add(s.RealizerInputs(c, site).Definitions()...)
			}
		}
	}
	for _, i := range s.graph.Interfaces() {
		w.add(s.Implementations(i).Definitions()...)
	}
	for _, t := range s.graph.Types {
		if !t.IsProperties() {
			w.add(s.scaffold(t)...)
		}
	}
	w.add(s.query()...)
	if s.config().FeatureEnabled(gen.FeatureMutations) {
		w.add(s.mutation()...)
	}
	if w.err != nil {
		return nil, w.err
	}
	s.log.Debug("synthesized schema", zap.Int("definitions", w.doc.Len()))
	return w.doc, nil
}

func (s *Synthesizer) config() *gen.Config {
	return s.graph.Config
}

// writer adds definitions to a document, interning the helpers they
// reference. It keeps the first error.
type writer struct {
	doc *emit.Document
	err error
}

func (w *writer) add(defs ...*ast.Definition) {
	for _, def := range defs {
		if w.err != nil {
			return
		}
		if def == nil {
			continue
		}
		w.err = w.doc.Add(def)
		for _, name := range references(def) {
			if build, ok := helpers[name]; ok && w.doc.Lookup(name) == nil {
				w.add(build())
			}
		}
	}
}

func sortTypes(ts []*gen.Type) {
	slices.SortFunc(ts, func(a, b *gen.Type) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func sortStrings(ss []string) {
	slices.Sort(ss)
}
