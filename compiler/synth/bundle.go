package synth

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/resolve"
)

type (
	// Bundle holds the artifacts synthesized for a relationship site.
	Bundle struct {
		// Site is the resolved site.
		Site *resolve.Site
		// Attributes holds the distinct attribute records used by the
		// realizations of the site, sorted by name.
		Attributes []*gen.Type

		// Union is <P>RelationshipProperties. Set at interface sites with at
		// least one attribute record.
		Union *ast.Definition
		// Edge input family keyed by attribute record name. Set together with
		// Union; EdgeSort and EdgeAggregationWhere may be nil when no member
		// has sortable or aggregatable fields.
		EdgeCreate           *ast.Definition
		EdgeUpdate           *ast.Definition
		EdgeWhere            *ast.Definition
		EdgeSort             *ast.Definition
		EdgeAggregationWhere *ast.Definition

		Relationship    *ast.Definition
		Connection      *ast.Definition
		ConnectionWhere *ast.Definition
		// ConnectionSort is nil when neither the target nor the edge sorts.
		ConnectionSort *ast.Definition

		// Aggregation artifacts, nil when aggregations are disabled.
		AggregateInput         *ast.Definition
		NodeAggregationWhere   *ast.Definition
		AggregationSelection   *ast.Definition
		NodeAggregateSelection *ast.Definition
		EdgeAggregateSelection *ast.Definition

		// WriteInputs are named after the site. FieldInput is only set for
		// sites declared by node types.
		WriteInputs

		realizers map[*gen.Type][]string
	}

	// WriteInputs are the nested mutation inputs of a relationship field,
	// named after their owner type and field.
	WriteInputs struct {
		FieldInput            *ast.Definition
		CreateFieldInput      *ast.Definition
		ConnectFieldInput     *ast.Definition
		UpdateConnectionInput *ast.Definition
		UpdateFieldInput      *ast.Definition
		DisconnectFieldInput  *ast.Definition
		DeleteFieldInput      *ast.Definition
	}

	// edge names the types of the properties side of a relationship. The
	// zero value describes a relationship without properties.
	edge struct {
		properties       string
		optional         bool
		create           string
		createRequired   bool
		update           string
		where            string
		sort             string
		aggregationWhere string
		// record is set when the edge is a single attribute record.
		record *gen.Type
	}
)

// Realizers returns the sorted names of the concrete types realizing the
// site with the given attribute record.
func (b *Bundle) Realizers(a *gen.Type) []string {
	return b.realizers[a]
}

// Definitions returns the non-nil definitions of the bundle.
func (b *Bundle) Definitions() []*ast.Definition {
	return nonNil(
		b.Union, b.EdgeCreate, b.EdgeUpdate, b.EdgeWhere, b.EdgeSort, b.EdgeAggregationWhere,
		b.Relationship, b.Connection, b.ConnectionWhere, b.ConnectionSort,
		b.AggregateInput, b.NodeAggregationWhere, b.AggregationSelection, b.NodeAggregateSelection, b.EdgeAggregateSelection,
	)
}

// All returns the bundle definitions and its write inputs.
func (b *Bundle) All() []*ast.Definition {
	return append(b.Definitions(), b.WriteInputs.Definitions()...)
}

// Definitions returns the non-nil write inputs.
func (w *WriteInputs) Definitions() []*ast.Definition {
	return nonNil(
		w.FieldInput, w.CreateFieldInput, w.ConnectFieldInput, w.UpdateConnectionInput,
		w.UpdateFieldInput, w.DisconnectFieldInput, w.DeleteFieldInput,
	)
}

func nonNil(defs ...*ast.Definition) []*ast.Definition {
	out := defs[:0]
	for _, def := range defs {
		if def != nil {
			out = append(out, def)
		}
	}
	return out
}

// Bundle returns the artifacts of the given site. Bundles are memoized per
// synthesizer.
func (s *Synthesizer) Bundle(site *resolve.Site) *Bundle {
	if b, ok := s.bundles[site]; ok {
		return b
	}
	var (
		p      = prefix(site.Name())
		target = site.Target()
		t      = prefix(target.Name)
		b      = &Bundle{Site: site}
	)
	b.Attributes, b.realizers = attributes(site)
	e := s.siteEdge(b, p)

	rel := ast.FieldList{
		field("cursor", nonNull("String")),
		field("node", nonNull(target.Name)),
	}
	if e.properties != "" {
		typ := nonNull(e.properties)
		if e.optional {
			typ = named(e.properties)
		}
		rel = append(rel, field("properties", typ))
	}
	b.Relationship = object(p.Relationship(), rel)
	b.Connection = object(p.Connection(), ast.FieldList{
		field("edges", nonNullListOf(p.Relationship())),
		field("pageInfo", nonNull("PageInfo")),
		field("totalCount", nonNull("Int")),
	})

	where := append(logical(p.ConnectionWhere()), field("node", named(t.Where())))
	if e.where != "" {
		where = append(where, field("edge", named(e.where)))
	}
	b.ConnectionWhere = input(p.ConnectionWhere(), where)

	var sort ast.FieldList
	if hasSort(target) {
		sort = append(sort, field("node", named(t.Sort())))
	}
	if e.sort != "" {
		sort = append(sort, field("edge", named(e.sort)))
	}
	b.ConnectionSort = input(p.ConnectionSort(), sort)

	if s.config().FeatureEnabled(gen.FeatureAggregations) {
		s.aggregates(b, p, e)
	}
	b.WriteInputs = s.writeInputs(p, site, site.Owner.IsNode(), e)
	s.bundles[site] = b
	return b
}

// attributes returns the distinct attribute records of the site sorted by
// name, and the concrete types realizing each of them.
func attributes(site *resolve.Site) ([]*gen.Type, map[*gen.Type][]string) {
	var (
		attrs     []*gen.Type
		realizers = make(map[*gen.Type][]string)
	)
	for _, r := range site.Realizations {
		a := r.Properties()
		if a == nil {
			continue
		}
		if _, ok := realizers[a]; !ok {
			attrs = append(attrs, a)
		}
		realizers[a] = append(realizers[a], r.Type.Name)
	}
	sortTypes(attrs)
	for _, names := range realizers {
		sortStrings(names)
	}
	return attrs, realizers
}

// siteEdge synthesizes the properties side of a site. Interface sites get a
// union and an edge input family keyed by attribute record name, even with a
// single member. Sites declared by node types reference the record directly.
func (s *Synthesizer) siteEdge(b *Bundle, p prefix) edge {
	switch {
	case len(b.Attributes) == 0:
		return edge{}
	case !b.Site.Polymorphic():
		return s.recordEdge(b.Attributes[0])
	}
	var members []string
	var create, update, where, sort, aggs ast.FieldList
	for _, a := range b.Attributes {
		members = append(members, a.Name)
		fam := s.registry.Family(a)
		doc := realizedBy(b.realizers[a])
		create = append(create, documented(field(a.Name, nonNull(fam.Create.Name)), doc))
		update = append(update, documented(field(a.Name, named(fam.Update.Name)), doc))
		where = append(where, documented(field(a.Name, named(fam.Where.Name)), doc))
		if fam.Sort != nil {
			sort = append(sort, documented(field(a.Name, named(fam.Sort.Name)), doc))
		}
		if fam.AggregationWhere != nil {
			aggs = append(aggs, documented(field(a.Name, named(fam.AggregationWhere.Name)), doc))
		}
	}
	b.Union = &ast.Definition{Kind: ast.Union, Name: p.RelationshipProperties(), Types: members}
	b.EdgeCreate = input(p.EdgeCreateInput(), create)
	b.EdgeUpdate = input(p.EdgeUpdateInput(), update)
	b.EdgeWhere = input(p.EdgeWhere(), where)
	b.EdgeSort = input(p.EdgeSort(), sort)
	b.EdgeAggregationWhere = input(p.EdgeAggregationWhere(), aggs)
	return edge{
		properties:       p.RelationshipProperties(),
		optional:         len(b.Site.Realizations) > countRealizers(b),
		create:           p.EdgeCreateInput(),
		createRequired:   true,
		update:           p.EdgeUpdateInput(),
		where:            p.EdgeWhere(),
		sort:             defName(b.EdgeSort),
		aggregationWhere: defName(b.EdgeAggregationWhere),
	}
}

func countRealizers(b *Bundle) int {
	var n int
	for _, names := range b.realizers {
		n += len(names)
	}
	return n
}

// recordEdge returns the edge of a relationship carrying a single attribute
// record, or the zero edge for nil.
func (s *Synthesizer) recordEdge(a *gen.Type) edge {
	if a == nil {
		return edge{}
	}
	fam := s.registry.Family(a)
	return edge{
		properties:       a.Name,
		create:           fam.Create.Name,
		createRequired:   fam.CreateRequired(),
		update:           fam.Update.Name,
		where:            fam.Where.Name,
		sort:             defName(fam.Sort),
		aggregationWhere: defName(fam.AggregationWhere),
		record:           a,
	}
}

func (s *Synthesizer) aggregates(b *Bundle, p prefix, e edge) {
	target := b.Site.Target()
	b.NodeAggregationWhere = aggregationWhere(p.NodeAggregationWhere(), target)
	in := append(logical(p.AggregateInput()),
		field("count", named("Int")),
		field("countLT", named("Int")),
		field("countLTE", named("Int")),
		field("countGT", named("Int")),
		field("countGTE", named("Int")),
	)
	if b.NodeAggregationWhere != nil {
		in = append(in, field("node", named(b.NodeAggregationWhere.Name)))
	}
	if e.aggregationWhere != "" {
		in = append(in, field("edge", named(e.aggregationWhere)))
	}
	b.AggregateInput = input(p.AggregateInput(), in)

	b.NodeAggregateSelection = aggregateSelection(p.NodeAggregateSelection(), target, false)
	if e.record != nil {
		b.EdgeAggregateSelection = aggregateSelection(p.EdgeAggregateSelection(), e.record, false)
	}
	sel := ast.FieldList{field("count", nonNull("Int"))}
	if b.NodeAggregateSelection != nil {
		sel = append(sel, field("node", named(b.NodeAggregateSelection.Name)))
	}
	if b.EdgeAggregateSelection != nil {
		sel = append(sel, field("edge", named(b.EdgeAggregateSelection.Name)))
	}
	b.AggregationSelection = object(p.AggregationSelection(), sel)
}

// writeInputs synthesizes the nested mutation inputs of a relationship field
// owned by q. Filters always use the connection where of the site.
func (s *Synthesizer) writeInputs(q prefix, site *resolve.Site, fieldInput bool, e edge) WriteInputs {
	var (
		w      WriteInputs
		p      = prefix(site.Name())
		target = site.Target()
		t      = prefix(target.Name)
		card   = site.Cardinality()
	)
	edgeField := func(fields ast.FieldList, name string, required bool) ast.FieldList {
		switch {
		case name == "":
			return fields
		case required:
			return append(fields, field("edge", nonNull(name)))
		default:
			return append(fields, field("edge", named(name)))
		}
	}
	if s.hasCreate(target) {
		w.CreateFieldInput = input(q.CreateFieldInput(), edgeField(
			ast.FieldList{field("node", nonNull(t.CreateInput()))}, e.create, e.createRequired))
	}
	connect := ast.FieldList{field("where", named(t.ConnectWhere()))}
	if s.hasConnect(target) {
		connect = append(connect, field("connect", many(card, t.ConnectInput())))
	}
	w.ConnectFieldInput = input(q.ConnectFieldInput(), edgeField(connect, e.create, e.createRequired))
	w.UpdateConnectionInput = input(q.UpdateConnectionInput(), edgeField(
		ast.FieldList{field("node", named(t.UpdateInput()))}, e.update, false))
	w.DisconnectFieldInput = input(q.DisconnectFieldInput(), ast.FieldList{field("where", named(p.ConnectionWhere()))})
	w.DeleteFieldInput = input(q.DeleteFieldInput(), ast.FieldList{field("where", named(p.ConnectionWhere()))})

	update := ast.FieldList{
		field("where", named(p.ConnectionWhere())),
		field("connect", many(card, q.ConnectFieldInput())),
	}
	if w.CreateFieldInput != nil {
		update = append(update, field("create", many(card, q.CreateFieldInput())))
	}
	update = append(update,
		field("update", named(q.UpdateConnectionInput())),
		field("disconnect", many(card, q.DisconnectFieldInput())),
		field("delete", many(card, q.DeleteFieldInput())),
	)
	w.UpdateFieldInput = input(q.UpdateFieldInput(), update)

	if fieldInput {
		var fields ast.FieldList
		if w.CreateFieldInput != nil {
			fields = append(fields, field("create", many(card, q.CreateFieldInput())))
		}
		fields = append(fields, field("connect", many(card, q.ConnectFieldInput())))
		w.FieldInput = input(q.FieldInput(), fields)
	}
	return w
}

// RealizerInputs returns the write inputs of a node type realizing a site
// declared by one of its interfaces. They are named after the node type and
// carry the node's own attribute record as edge.
func (s *Synthesizer) RealizerInputs(c *gen.Type, site *resolve.Site) *WriteInputs {
	key := resolve.Key{Type: c.Name, Field: site.Field.Name}
	if w, ok := s.realizers[key]; ok {
		return w
	}
	var a *gen.Type
	if r := site.Realization(c); r != nil {
		a = r.Properties()
	}
	w := s.writeInputs(sitePrefix(c, site.Field.Name), site, true, s.recordEdge(a))
	s.realizers[key] = &w
	return &w
}

// writeInputsOf returns the write inputs used by node type c for a field
// resolving to site.
func (s *Synthesizer) writeInputsOf(c *gen.Type, site *resolve.Site) *WriteInputs {
	if site.Owner == c {
		return &s.Bundle(site).WriteInputs
	}
	return s.RealizerInputs(c, site)
}

func realizedBy(names []string) string {
	var b strings.Builder
	b.WriteString("Relationship properties when source node is of type:")
	for _, name := range names {
		b.WriteString("\n* ")
		b.WriteString(name)
	}
	return b.String()
}

func documented(f *ast.FieldDefinition, doc string) *ast.FieldDefinition {
	f.Description = doc
	return f
}
