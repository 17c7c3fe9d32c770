package synth

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
)

// Implementations holds the inputs of an interface keyed by the names of
// its concrete implementors. They make relationship inputs targeting the
// interface polymorphic independently of any attribute records.
type Implementations struct {
	// Interface is the keyed interface.
	Interface *gen.Type
	// Enum is <I>Implementation, nil when the implementations feature is off.
	Enum *ast.Definition
	// Where is <I>ImplementationsWhere.
	Where *ast.Definition
	// Create is <I>CreateInput.
	Create *ast.Definition
	// Connect is <I>ImplementationsConnectInput, nil when no implementor
	// has relationships to connect.
	Connect *ast.Definition
}

// Definitions returns the non-nil definitions.
func (i *Implementations) Definitions() []*ast.Definition {
	return nonNil(i.Enum, i.Where, i.Create, i.Connect)
}

// Implementations returns the implementation-keyed inputs of interface i.
// All fields are nil for an interface without concrete implementors.
func (s *Synthesizer) Implementations(i *gen.Type) *Implementations {
	if impl, ok := s.impls[i]; ok {
		return impl
	}
	var (
		p                       = prefix(i.Name)
		impl                    = &Implementations{Interface: i}
		values                  ast.EnumValueList
		where, create, connects ast.FieldList
	)
	for _, c := range i.Concretes() {
		cp := prefix(c.Name)
		values = append(values, &ast.EnumValueDefinition{Name: c.Name})
		where = append(where, field(c.Name, named(cp.Where())))
		create = append(create, field(c.Name, named(cp.CreateInput())))
		if s.hasConnect(c) {
			connects = append(connects, field(c.Name, named(cp.ConnectInput())))
		}
	}
	if len(values) > 0 && s.config().FeatureEnabled(gen.FeatureImplementations) {
		impl.Enum = &ast.Definition{Kind: ast.Enum, Name: p.Implementation(), EnumValues: values}
	}
	impl.Where = input(p.ImplementationsWhere(), where)
	impl.Create = input(p.CreateInput(), create)
	impl.Connect = input(p.ImplementationsConnect(), connects)
	s.impls[i] = impl
	return impl
}

// hasCreate reports if a create input exists for t.
func (s *Synthesizer) hasCreate(t *gen.Type) bool {
	return t.IsNode() || len(t.Concretes()) > 0
}

// hasConnect reports if a connect input exists for t.
func (s *Synthesizer) hasConnect(t *gen.Type) bool {
	if len(s.relationships(t)) > 0 {
		return true
	}
	if !t.IsInterface() {
		return false
	}
	for _, c := range t.Concretes() {
		if len(s.relationships(c)) > 0 {
			return true
		}
	}
	return false
}
