package synth

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/resolve"
)

// siteOf returns the site a relationship field of t resolves to. For node
// types this is the primary site; for interfaces it is the owned site or the
// site a pass-through field forwards to.
func (s *Synthesizer) siteOf(t *gen.Type, f *gen.Field) *resolve.Site {
	if f.IsScalar() {
		return nil
	}
	if t.IsNode() {
		return s.sites.Primary(t, f.Name)
	}
	if site := s.sites.Owned(t, f.Name); site != nil {
		return site
	}
	return s.sites.PassThrough(t, f.Name)
}

// relationships returns the fields of t that resolve to a site.
func (s *Synthesizer) relationships(t *gen.Type) []*gen.Field {
	var fs []*gen.Field
	for _, f := range t.Fields {
		if s.siteOf(t, f) != nil {
			fs = append(fs, f)
		}
	}
	return fs
}

// interfaces returns the declared interfaces of t followed by the
// transitively implemented ones, sorted by name.
func interfaces(t *gen.Type) []string {
	var (
		names []string
		extra []string
		seen  = make(map[string]bool)
	)
	for _, i := range t.Implements {
		names = append(names, i.Name)
		seen[i.Name] = true
	}
	for _, a := range t.Ancestors() {
		if !seen[a.Name] {
			extra = append(extra, a.Name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// listArgs returns the arguments of a list field or root query over t.
func listArgs(t *gen.Type) ast.ArgumentDefinitionList {
	p := prefix(t.Name)
	args := ast.ArgumentDefinitionList{arg("where", named(p.Where()))}
	if hasSort(t) {
		args = append(args, arg("sort", listOf(p.Sort())))
	}
	return append(args, arg("limit", named("Int")), arg("offset", named("Int")))
}

// connectionArgs returns the arguments of a connection field.
func connectionArgs(where, sort string) ast.ArgumentDefinitionList {
	args := ast.ArgumentDefinitionList{arg("where", named(where))}
	if sort != "" {
		args = append(args, arg("sort", listOf(sort)))
	}
	return append(args, arg("first", named("Int")), arg("after", named("String")))
}

// relationshipFields returns the output fields of relationship f resolving
// to site: the traversal, its aggregate and its connection.
func (s *Synthesizer) relationshipFields(f *gen.Field, site *resolve.Site) ast.FieldList {
	var (
		b      = s.Bundle(site)
		p      = prefix(site.Name())
		fields = ast.FieldList{
			describeField(s.config(), field(f.Name, clone(f.Ref), listArgs(f.Target)...), f.Comment),
		}
	)
	if b.AggregationSelection != nil {
		fields = append(fields, field(f.Name+"Aggregate", named(b.AggregationSelection.Name),
			arg("where", named(prefix(f.Target.Name).Where()))))
	}
	return append(fields, field(f.Name+"Connection", nonNull(p.Connection()),
		connectionArgs(p.ConnectionWhere(), defName(b.ConnectionSort))...))
}

// output returns the object or interface type of t.
func (s *Synthesizer) output(t *gen.Type) *ast.Definition {
	kind := ast.Object
	if t.IsInterface() {
		kind = ast.Interface
	}
	def := &ast.Definition{Kind: kind, Name: t.Name, Interfaces: interfaces(t)}
	for _, f := range t.Fields {
		site := s.siteOf(t, f)
		// Pass-through interface fields keep the plain signature.
		if site == nil || (t.IsInterface() && site.Owner != t) {
			def.Fields = append(def.Fields, describeField(s.config(), field(f.Name, clone(f.Ref)), f.Comment))
			continue
		}
		def.Fields = append(def.Fields, s.relationshipFields(f, site)...)
	}
	return describeDef(s.config(), def, t.Comment)
}

// where returns <T>Where with scalar predicates and relationship filters.
func (s *Synthesizer) where(t *gen.Type) *ast.Definition {
	p := prefix(t.Name)
	fields := logical(p.Where())
	for _, f := range t.Fields {
		if f.IsScalar() {
			fields = append(fields, predicates(f)...)
			continue
		}
		site := s.siteOf(t, f)
		if site == nil {
			continue
		}
		var (
			b   = s.Bundle(site)
			sp  = prefix(site.Name())
			has = "has" + gen.UpperFirst(f.Name)
		)
		fields = append(fields,
			field(has, named("Boolean")),
			field(has+"With", listOf(prefix(f.Target.Name).Where())),
			field(has+"ConnectionWith", listOf(sp.ConnectionWhere())),
		)
		if b.AggregateInput != nil {
			fields = append(fields, field(f.Name+"Aggregate", named(b.AggregateInput.Name)))
		}
	}
	if t.IsInterface() {
		impl := s.Implementations(t)
		if impl.Enum != nil {
			fields = append(fields, field("typenameIn", listOf(impl.Enum.Name)))
		}
		if impl.Where != nil {
			fields = append(fields, field("on", named(impl.Where.Name)))
		}
	}
	return input(p.Where(), fields)
}

// create returns <C>CreateInput of a node type.
func (s *Synthesizer) create(c *gen.Type) *ast.Definition {
	var fields ast.FieldList
	for _, f := range c.Fields {
		if f.IsScalar() {
			fields = append(fields, field(f.Name, clone(f.Ref)))
			continue
		}
		if site := s.siteOf(c, f); site != nil {
			if w := s.writeInputsOf(c, site); w.FieldInput != nil {
				fields = append(fields, field(f.Name, named(w.FieldInput.Name)))
			}
		}
	}
	return input(prefix(c.Name).CreateInput(), fields)
}

// update returns <T>UpdateInput. Interfaces use the inputs of their sites.
func (s *Synthesizer) update(t *gen.Type) *ast.Definition {
	var fields ast.FieldList
	for _, f := range t.Fields {
		if f.IsScalar() {
			fields = append(fields, field(f.Name, optional(f.Ref)))
			continue
		}
		if site := s.siteOf(t, f); site != nil {
			fields = append(fields, field(f.Name, many(f.Cardinality(), s.inputsOf(t, site).UpdateFieldInput.Name)))
		}
	}
	return input(prefix(t.Name).UpdateInput(), fields)
}

// connect returns <T>ConnectInput, or nil if t has nothing to connect.
func (s *Synthesizer) connect(t *gen.Type) *ast.Definition {
	var fields ast.FieldList
	for _, f := range s.relationships(t) {
		site := s.siteOf(t, f)
		fields = append(fields, field(f.Name, many(f.Cardinality(), s.inputsOf(t, site).ConnectFieldInput.Name)))
	}
	if t.IsInterface() {
		if impl := s.Implementations(t); impl.Connect != nil {
			fields = append(fields, field("on", named(impl.Connect.Name)))
		}
	}
	return input(prefix(t.Name).ConnectInput(), fields)
}

// inputsOf returns the write inputs used by the fields of t resolving to site.
func (s *Synthesizer) inputsOf(t *gen.Type, site *resolve.Site) *WriteInputs {
	if t.IsInterface() {
		return &s.Bundle(site).WriteInputs
	}
	return s.writeInputsOf(t, site)
}

// scaffold returns the ordinary definitions of a node or interface type.
func (s *Synthesizer) scaffold(t *gen.Type) []*ast.Definition {
	p := prefix(t.Name)
	defs := []*ast.Definition{
		s.output(t),
		s.where(t),
		input(p.Sort(), sortFields(t)),
		s.update(t),
		s.connect(t),
		input(p.ConnectWhere(), ast.FieldList{field("node", nonNull(p.Where()))}),
	}
	if t.IsNode() {
		defs = append(defs, s.create(t))
	}
	if s.config().FeatureEnabled(gen.FeatureAggregations) {
		defs = append(defs, aggregateSelection(p.AggregateSelection(), t, true))
	}
	return nonNil(defs...)
}

// query returns the root Query type and its connection types.
func (s *Synthesizer) query() []*ast.Definition {
	var (
		defs   []*ast.Definition
		fields ast.FieldList
		types  = append(s.graph.Nodes(), s.graph.Interfaces()...)
	)
	sortTypes(types)
	for _, t := range types {
		var (
			p     = prefix(t.Name)
			names = paginationNames(t)
			sort  string
		)
		if hasSort(t) {
			sort = p.Sort()
		}
		fields = append(fields,
			field(names.Plural, nonNullListOf(t.Name), listArgs(t)...),
			field(names.Connection, nonNull(names.ConnectionType), connectionArgs(p.Where(), sort)...),
		)
		if s.config().FeatureEnabled(gen.FeatureAggregations) {
			fields = append(fields, field(names.Aggregate, nonNull(p.AggregateSelection()), arg("where", named(p.Where()))))
		}
		defs = append(defs,
			object(names.ConnectionType, ast.FieldList{
				field("edges", nonNullListOf(names.Edge)),
				field("pageInfo", nonNull("PageInfo")),
				field("totalCount", nonNull("Int")),
			}),
			object(names.Edge, ast.FieldList{
				field("cursor", nonNull("String")),
				field("node", nonNull(t.Name)),
			}),
		)
	}
	return nonNil(append(defs, object("Query", fields))...)
}

// mutation returns the root Mutation type and its response payloads.
func (s *Synthesizer) mutation() []*ast.Definition {
	var (
		defs   []*ast.Definition
		fields ast.FieldList
	)
	for _, c := range s.graph.Nodes() {
		var (
			p     = prefix(c.Name)
			names = mutationNamesOf(c)
		)
		fields = append(fields,
			field(names.Create, nonNull(names.CreateResponse), arg("input", nonNullListOf(p.CreateInput()))),
			field(names.Update, nonNull(names.UpdateResponse), arg("where", named(p.Where())), arg("update", named(p.UpdateInput()))),
			field(names.Delete, nonNull("DeleteInfo"), arg("where", named(p.Where()))),
		)
		defs = append(defs,
			object(names.CreateResponse, ast.FieldList{
				field("info", nonNull("CreateInfo")),
				field(names.Payload, nonNullListOf(c.Name)),
			}),
			object(names.UpdateResponse, ast.FieldList{
				field("info", nonNull("UpdateInfo")),
				field(names.Payload, nonNullListOf(c.Name)),
			}),
		)
	}
	return nonNil(append(defs, object("Mutation", fields))...)
}
