package gen

import (
	"fmt"

	"github.com/syssam/augment/compiler/load"
)

// Graph holds the validated type graph of a compile. It is immutable once
// NewGraph returns.
type Graph struct {
	*Config
	// Types holds all declared types in declaration order.
	Types []*Type

	types map[string]*Type
}

// NewGraph builds and validates the type graph for the loaded schema.
// All problems found in a phase are reported together as an AggregateError.
func NewGraph(c *Config, s *load.Schema) (*Graph, error) {
	if s == nil {
		return nil, NewConfigError("Schema", nil, "schema cannot be nil")
	}
	if c == nil {
		c = &Config{}
	}
	g := &Graph{Config: c, types: make(map[string]*Type)}
	b := &builder{g: g, schema: s}
	for _, phase := range []func(){b.declare, b.link, b.cycles, b.interfaces} {
		phase()
		if err := NewAggregateError(b.errs...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Type returns the type with the given name, or nil.
func (g *Graph) Type(name string) *Type {
	return g.types[name]
}

// Nodes returns the node types sorted by name.
func (g *Graph) Nodes() []*Type { return g.kind(KindNode) }

// Interfaces returns the interfaces sorted by name.
func (g *Graph) Interfaces() []*Type { return g.kind(KindInterface) }

// Properties returns the attribute records sorted by name.
func (g *Graph) Properties() []*Type { return g.kind(KindProperties) }

// Scalars returns the non built-in scalars referenced by any field.
func (g *Graph) Scalars() []ScalarKind {
	var used bool
	for _, t := range g.Types {
		for _, f := range t.Fields {
			if f.Scalar == ScalarDateTime {
				used = true
			}
		}
	}
	if used {
		return []ScalarKind{ScalarDateTime}
	}
	return nil
}

func (g *Graph) kind(k Kind) []*Type {
	var ts []*Type
	for _, t := range g.Types {
		if t.Kind == k {
			ts = append(ts, t)
		}
	}
	sortTypes(ts)
	return ts
}

type builder struct {
	g      *Graph
	schema *load.Schema
	errs   []error
}

func (b *builder) fail(t *load.Type, field *load.Field, format string, args ...any) {
	err := NewSchemaError(t.Name, "", fmt.Sprintf(format, args...), nil)
	err.Pos = t.Pos
	if field != nil {
		err.Field = field.Name
		err.Pos = field.Pos
	}
	b.errs = append(b.errs, err)
}

// declare registers all type names and kinds.
func (b *builder) declare() {
	for i, lt := range b.schema.Types {
		if lt == nil {
			b.errs = append(b.errs, NewSchemaError("", "", fmt.Sprintf("types[%d] is empty", i), nil))
			continue
		}
		if lt.Name == "" {
			b.fail(lt, nil, "types[%d] has no name", i)
			continue
		}
		if _, ok := LookupScalar(lt.Name); ok {
			b.fail(lt, nil, "name is reserved for a scalar")
			continue
		}
		if lt.Name == "Query" || lt.Name == "Mutation" {
			b.fail(lt, nil, "name is reserved for a root operation type")
			continue
		}
		if _, ok := b.g.types[lt.Name]; ok {
			b.fail(lt, nil, "type is declared more than once")
			continue
		}
		t := &Type{
			Name:    lt.Name,
			Comment: lt.Comment,
			Pos:     lt.Pos,
			fields:  make(map[string]*Field),
		}
		switch lt.KindOf() {
		case load.KindNode:
			t.Kind = KindNode
		case load.KindInterface:
			t.Kind = KindInterface
		case load.KindProperties:
			t.Kind = KindProperties
		default:
			b.fail(lt, nil, "unknown kind %q", lt.Kind)
			continue
		}
		b.g.types[t.Name] = t
		b.g.Types = append(b.g.Types, t)
	}
}

// link resolves implements edges, fields and relationship declarations.
func (b *builder) link() {
	for _, lt := range b.schema.Types {
		if lt == nil {
			continue
		}
		t := b.g.types[lt.Name]
		b.linkImplements(t, lt)
		if len(lt.Fields) == 0 {
			b.fail(lt, nil, "%s must declare at least one field", t.Kind)
		}
		for _, lf := range lt.Fields {
			if lf == nil {
				b.fail(lt, nil, "field list contains an empty entry")
				continue
			}
			f, err := b.newField(t, lt, lf)
			if err != nil {
				b.errs = append(b.errs, err)
				continue
			}
			if _, ok := t.fields[f.Name]; ok {
				b.fail(lt, lf, "field is declared more than once")
				continue
			}
			t.fields[f.Name] = f
			t.Fields = append(t.Fields, f)
		}
	}
	for _, t := range b.g.Types {
		for _, i := range t.Implements {
			i.implementors = append(i.implementors, t)
		}
	}
	for _, t := range b.g.Types {
		sortTypes(t.implementors)
	}
}

func (b *builder) linkImplements(t *Type, lt *load.Type) {
	seen := make(map[string]bool)
	for _, name := range lt.Implements {
		i, ok := b.g.types[name]
		switch {
		case !ok:
			b.fail(lt, nil, "implements unknown type %q", name)
		case !i.IsInterface():
			b.fail(lt, nil, "implements %q which is not an interface", name)
		case t.IsProperties():
			b.fail(lt, nil, "attribute records cannot implement interfaces")
		case i == t:
			b.fail(lt, nil, "interface cannot implement itself")
		case seen[name]:
			b.fail(lt, nil, "implements %q more than once", name)
		default:
			t.Implements = append(t.Implements, i)
		}
		seen[name] = true
	}
}

func (b *builder) newField(t *Type, lt *load.Type, lf *load.Field) (*Field, error) {
	fail := func(format string, args ...any) error {
		err := NewSchemaError(t.Name, lf.Name, fmt.Sprintf(format, args...), nil)
		err.Pos = lf.Pos
		return err
	}
	if lf.Name == "" {
		return nil, fail("field has no name")
	}
	ref, err := load.ParseTypeRef(lf.Type)
	if err != nil {
		return nil, fail("%v", err)
	}
	f := &Field{
		Name:     lf.Name,
		Comment:  lf.Comment,
		Pos:      lf.Pos,
		Owner:    t,
		Ref:      ref,
		List:     ref.Elem != nil,
		Nullable: !ref.NonNull,
	}
	name := ref.Name()
	if s, ok := LookupScalar(name); ok {
		f.Scalar = s
	} else {
		target, ok := b.g.types[name]
		switch {
		case !ok:
			return nil, fail("unknown type %q", name)
		case target.IsProperties():
			return nil, fail("attribute record %q cannot be used as a field type", name)
		case t.IsProperties():
			return nil, fail("attribute records can only hold scalar fields")
		}
		f.Target = target
	}
	lr := lf.Relationship
	if lr == nil {
		if t.IsNode() && !f.IsScalar() {
			return nil, fail("field of type %q must declare a relationship", name)
		}
		return f, nil
	}
	switch {
	case f.IsScalar():
		return nil, fail("relationship field must target a node or interface type, got %q", name)
	case t.IsProperties():
		return nil, fail("attribute records cannot declare relationships")
	case lr.Declared && !t.IsInterface():
		return nil, fail("abstract relationship declarations are only allowed on interfaces")
	case !lr.Declared && !t.IsNode():
		return nil, fail("interfaces can only declare relationships abstractly")
	case lr.Declared && lr.Properties != "":
		return nil, fail("abstract relationship declarations cannot carry properties")
	case !lr.Declared && lr.Type == "":
		return nil, fail("relationship has no type")
	}
	rel := &Relationship{Label: lr.Type, Direction: Direction(lr.Direction), Abstract: lr.Declared}
	switch rel.Direction {
	case In, Out:
	case "":
		if !rel.Abstract {
			return nil, fail("relationship has no direction")
		}
	default:
		return nil, fail("invalid relationship direction %q, expected IN or OUT", lr.Direction)
	}
	if lr.Properties != "" {
		p, ok := b.g.types[lr.Properties]
		if !ok || !p.IsProperties() {
			return nil, fail("relationship properties %q is not an attribute record", lr.Properties)
		}
		rel.Properties = p
	}
	f.Relationship = rel
	return f, nil
}

// cycles reports implements cycles among interfaces.
func (b *builder) cycles() {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*Type]int)
	var visit func(t *Type) bool
	visit = func(t *Type) bool {
		switch state[t] {
		case visiting:
			return true
		case done:
			return false
		}
		state[t] = visiting
		for _, i := range t.Implements {
			if visit(i) {
				return true
			}
		}
		state[t] = done
		return false
	}
	for _, t := range b.g.Types {
		if state[t] == 0 && visit(t) {
			err := NewSchemaError(t.Name, "", "implements cycle detected", nil)
			err.Pos = t.Pos
			b.errs = append(b.errs, err)
		}
	}
}

// interfaces checks that ordinary interface fields are re-exposed verbatim by
// direct implementors. Abstract declarations are checked by the resolver.
func (b *builder) interfaces() {
	for _, t := range b.g.Types {
		for _, i := range t.Implements {
			for _, f := range i.Fields {
				if f.IsDeclaration() {
					continue
				}
				own := t.Field(f.Name)
				switch {
				case own == nil:
					err := NewSchemaError(t.Name, f.Name, fmt.Sprintf("does not re-expose field of interface %s", i.Name), nil)
					err.Pos = t.Pos
					b.errs = append(b.errs, err)
				case own.Shape() != f.Shape():
					err := NewSchemaError(t.Name, f.Name, fmt.Sprintf("has type %s but interface %s declares %s", own.Shape(), i.Name, f.Shape()), nil)
					err.Pos = own.Pos
					b.errs = append(b.errs, err)
				}
			}
		}
	}
}
