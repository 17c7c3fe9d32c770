package synth

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
)

// Family is the generated input family of an attribute record.
type Family struct {
	// Type is the attribute record.
	Type *gen.Type
	// Object is the output object of the record, e.g. type ActedIn.
	Object *ast.Definition
	// Create is <A>CreateInput.
	Create *ast.Definition
	// Update is <A>UpdateInput.
	Update *ast.Definition
	// Where is <A>Where.
	Where *ast.Definition
	// Sort is <A>Sort, nil if the record has no sortable fields.
	Sort *ast.Definition
	// AggregationWhere is <A>AggregationWhereInput, nil if the record has no
	// aggregatable fields or aggregations are disabled.
	AggregationWhere *ast.Definition
}

// Definitions returns the non-nil definitions of the family.
func (f *Family) Definitions() []*ast.Definition {
	var defs []*ast.Definition
	for _, def := range []*ast.Definition{f.Object, f.Create, f.Update, f.Where, f.Sort, f.AggregationWhere} {
		if def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// CreateRequired reports if the create input holds a required field.
func (f *Family) CreateRequired() bool {
	for _, fd := range f.Create.Fields {
		if fd.Type.NonNull {
			return true
		}
	}
	return false
}

// Registry generates and memoizes attribute record families. It is not
// safe for concurrent use; each compile owns its registry.
type Registry struct {
	config   *gen.Config
	families map[*gen.Type]*Family
}

// NewRegistry returns an empty registry.
func NewRegistry(c *gen.Config) *Registry {
	return &Registry{config: c, families: make(map[*gen.Type]*Family)}
}

// Family returns the input family of the given attribute record.
func (r *Registry) Family(t *gen.Type) *Family {
	if f, ok := r.families[t]; ok {
		return f
	}
	var (
		p      = prefix(t.Name)
		fields = t.ScalarFields()
		out    ast.FieldList
		create ast.FieldList
		update ast.FieldList
		where  = logical(p.Where())
	)
	for _, f := range fields {
		out = append(out, describeField(r.config, field(f.Name, clone(f.Ref)), f.Comment))
		create = append(create, field(f.Name, clone(f.Ref)))
		update = append(update, field(f.Name, optional(f.Ref)))
		where = append(where, predicates(f)...)
	}
	f := &Family{
		Type:   t,
		Object: describeDef(r.config, object(t.Name, out), t.Comment),
		Create: input(p.CreateInput(), create),
		Update: input(p.UpdateInput(), update),
		Where:  input(p.Where(), where),
		Sort:   input(p.Sort(), sortFields(t)),
	}
	if r.config.FeatureEnabled(gen.FeatureAggregations) {
		f.AggregationWhere = aggregationWhere(p.AggregationWhereInput(), t)
	}
	r.families[t] = f
	return f
}

// describeDef sets the description of def when descriptions are enabled.
func describeDef(c *gen.Config, def *ast.Definition, comment string) *ast.Definition {
	if def != nil && comment != "" && c.FeatureEnabled(gen.FeatureDescriptions) {
		def.Description = comment
	}
	return def
}

// describeField sets the description of f when descriptions are enabled.
func describeField(c *gen.Config, f *ast.FieldDefinition, comment string) *ast.FieldDefinition {
	if comment != "" && c.FeatureEnabled(gen.FeatureDescriptions) {
		f.Description = comment
	}
	return f
}
