// Package resolve finds the declaring site of every relationship field in a
// type graph.
//
// A site is the unique (type, field) pair that owns the authoritative
// definition of a relationship. Fields declared abstractly on an interface
// are owned by the nearest declaring interface and realized by each concrete
// implementor. Fields realized on a node type with no declaring ancestor are
// owned by the node type itself.
package resolve

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/augment/compiler/gen"
)

type (
	// Key identifies a field of a type.
	Key struct {
		Type  string
		Field string
	}

	// Site is a resolved relationship site.
	Site struct {
		// Owner is the declaring type.
		Owner *gen.Type
		// Field is the declaring field on Owner.
		Field *gen.Field
		// Realizations holds the concrete realizations sorted by type name.
		Realizations []*Realization
	}

	// Realization is a concrete type's physical declaration of a site field.
	Realization struct {
		Type  *gen.Type
		Field *gen.Field
	}

	// Result holds all sites of a graph.
	Result struct {
		// Warnings holds non-fatal diagnostics, sorted by site name.
		Warnings []error

		sites       []*Site
		owned       map[Key]*Site
		primary     map[Key]*Site
		passThrough map[Key]*Site
	}
)

// Name returns the site prefix used to name its artifacts, e.g. ProductionActors.
func (s *Site) Name() string {
	return s.Owner.Name + gen.UpperFirst(s.Field.Name)
}

// Polymorphic reports if the site is declared on an interface.
func (s *Site) Polymorphic() bool {
	return s.Owner.IsInterface()
}

// Target returns the declared relationship target.
func (s *Site) Target() *gen.Type {
	return s.Field.Target
}

// Cardinality returns the declared cardinality.
func (s *Site) Cardinality() gen.Cardinality {
	return s.Field.Cardinality()
}

// Location returns the location of the declaring field.
func (s *Site) Location() gen.Location {
	return s.Field.Location()
}

// Realization returns the realization of the given concrete type, or nil.
func (s *Site) Realization(t *gen.Type) *Realization {
	for _, r := range s.Realizations {
		if r.Type == t {
			return r
		}
	}
	return nil
}

// Properties returns the attribute record of the realization, or nil.
func (r *Realization) Properties() *gen.Type {
	return r.Field.Properties()
}

// Sites returns all sites sorted by name.
func (r *Result) Sites() []*Site {
	return r.sites
}

// Owned returns the site declared by the given type and field, or nil.
func (r *Result) Owned(t *gen.Type, field string) *Site {
	return r.owned[Key{Type: t.Name, Field: field}]
}

// Primary returns the site a node type's field resolves to, or nil if the
// field is not a relationship.
func (r *Result) Primary(t *gen.Type, field string) *Site {
	return r.primary[Key{Type: t.Name, Field: field}]
}

// PassThrough returns the ancestor site an interface field forwards to, or
// nil if the field is not a pass-through.
func (r *Result) PassThrough(t *gen.Type, field string) *Site {
	return r.passThrough[Key{Type: t.Name, Field: field}]
}

// Resolve computes the relationship sites of the graph. All fatal problems
// are reported together; on failure no partial result is returned.
func Resolve(g *gen.Graph) (*Result, error) {
	r := &resolver{
		g: g,
		res: &Result{
			owned:       make(map[Key]*Site),
			primary:     make(map[Key]*Site),
			passThrough: make(map[Key]*Site),
		},
		reported: make(map[string]bool),
	}
	r.declarations()
	r.nodes()
	r.interfaces()
	r.missing()
	slices.SortStableFunc(r.errs, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})
	if err := gen.NewAggregateError(r.errs...); err != nil {
		return nil, err
	}
	r.warnings()
	slices.SortFunc(r.res.sites, func(a, b *Site) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return r.res, nil
}

type resolver struct {
	g        *gen.Graph
	res      *Result
	errs     []error
	reported map[string]bool
}

func (r *resolver) addSite(owner *gen.Type, f *gen.Field) *Site {
	s := &Site{Owner: owner, Field: f}
	r.res.sites = append(r.res.sites, s)
	r.res.owned[Key{Type: owner.Name, Field: f.Name}] = s
	return s
}

// declarations records every abstract interface declaration as a site.
func (r *resolver) declarations() {
	for _, i := range r.g.Interfaces() {
		for _, f := range i.Fields {
			if f.IsDeclaration() {
				r.addSite(i, f)
			}
		}
	}
}

// declarers returns the sites declared by ancestors of t for the given
// field, nearest first.
func (r *resolver) declarers(t *gen.Type, field string) []*Site {
	var sites []*Site
	for _, a := range t.Ancestors() {
		if s := r.res.Owned(a.Type, field); s != nil {
			sites = append(sites, s)
		}
	}
	return sites
}

// consistent reports AmbiguousDeclaration for every pair of incompatible
// sites reachable from t. Each pair is reported once.
func (r *resolver) consistent(t *gen.Type, sites []*Site) bool {
	ok := true
	for i, a := range sites {
		for _, b := range sites[i+1:] {
			msg := mismatch(a.Field, b.Field.Target, b.Cardinality(), true)
			if msg == "" {
				continue
			}
			ok = false
			key := a.Name() + "|" + b.Name()
			if r.reported[key] {
				continue
			}
			r.reported[key] = true
			r.errs = append(r.errs, gen.NewAmbiguousDeclarationError(t.Name, a.Field.Name, a.Location(), b.Location(), msg))
		}
	}
	return ok
}

// nodes resolves the fields of every node type.
func (r *resolver) nodes() {
	for _, t := range r.g.Nodes() {
		for _, f := range t.Fields {
			sites := r.declarers(t, f.Name)
			if len(sites) == 0 {
				if f.IsRealization() {
					s := r.addSite(t, f)
					s.Realizations = append(s.Realizations, &Realization{Type: t, Field: f})
					r.res.primary[Key{Type: t.Name, Field: f.Name}] = s
				}
				continue
			}
			if !r.consistent(t, sites) {
				continue
			}
			site := sites[0]
			if msg := mismatch(f, site.Target(), site.Cardinality(), false); msg != "" {
				r.errs = append(r.errs, gen.NewRealizationMismatchError(site.Location(), t.Name, f.Pos, msg))
				continue
			}
			if !f.IsRealization() {
				r.errs = append(r.errs, gen.NewRealizationMismatchError(site.Location(), t.Name, f.Pos, "field does not declare a relationship"))
				continue
			}
			for _, s := range sites {
				s.Realizations = append(s.Realizations, &Realization{Type: t, Field: f})
			}
			r.res.primary[Key{Type: t.Name, Field: f.Name}] = site
		}
	}
}

// interfaces marks pass-through fields and checks interface declarations
// against their declaring ancestors.
func (r *resolver) interfaces() {
	for _, t := range r.g.Interfaces() {
		for _, f := range t.Fields {
			sites := r.declarers(t, f.Name)
			if len(sites) == 0 {
				continue
			}
			if f.IsDeclaration() {
				r.consistent(t, append([]*Site{r.res.Owned(t, f.Name)}, sites...))
				continue
			}
			if !r.consistent(t, sites) {
				continue
			}
			site := sites[0]
			if msg := mismatch(f, site.Target(), site.Cardinality(), false); msg != "" {
				r.errs = append(r.errs, gen.NewRealizationMismatchError(site.Location(), t.Name, f.Pos, msg))
				continue
			}
			r.res.passThrough[Key{Type: t.Name, Field: f.Name}] = site
		}
	}
}

// missing reports concrete implementors of a declaring interface that do
// not expose the declared field at all.
func (r *resolver) missing() {
	for _, s := range r.res.sites {
		if !s.Polymorphic() {
			continue
		}
		for _, c := range s.Owner.Concretes() {
			if c.Field(s.Field.Name) == nil {
				r.errs = append(r.errs, gen.NewRealizationMismatchError(s.Location(), c.Name, c.Pos, "missing realization"))
			}
		}
	}
}

func (r *resolver) warnings() {
	for _, s := range r.res.sites {
		if s.Polymorphic() && len(s.Realizations) == 0 {
			r.res.Warnings = append(r.res.Warnings, &gen.UnresolvedAbstractFieldWarning{Site: s.Location()})
		}
	}
	slices.SortFunc(r.res.Warnings, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})
}

// mismatch describes why f is incompatible with the declared target and
// cardinality. With exact set the targets must be equal; otherwise the
// field target may also implement the declared target.
func mismatch(f *gen.Field, target *gen.Type, card gen.Cardinality, exact bool) string {
	switch {
	case f.Target == nil || target == nil:
		return fmt.Sprintf("target %s is not a node or interface", f.TargetName())
	case exact && f.Target != target:
		return fmt.Sprintf("target %s differs from %s", f.Target.Name, target.Name)
	case !exact && !f.Target.IsA(target):
		return fmt.Sprintf("target %s is not compatible with %s", f.Target.Name, target.Name)
	case f.Cardinality() != card:
		return fmt.Sprintf("cardinality %s differs from %s", f.Cardinality(), card)
	}
	return ""
}
