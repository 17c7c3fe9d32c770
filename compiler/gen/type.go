package gen

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

type (
	// Kind is the kind of a type in the graph.
	Kind uint8

	// Cardinality of a field.
	Cardinality uint8

	// Direction of a relationship.
	Direction string

	// ScalarKind identifies a built-in scalar.
	ScalarKind uint8

	// Type is a node, interface or attribute record in the graph.
	Type struct {
		// Name of the type as declared.
		Name string
		// Kind of the type.
		Kind Kind
		// Comment holds the model comment, if any.
		Comment string
		// Pos is the source position of the declaration.
		Pos string
		// Implements holds the directly implemented interfaces in declaration order.
		Implements []*Type
		// Fields holds the fields in declaration order.
		Fields []*Field

		fields map[string]*Field
		// implementors holds the direct implementors, sorted by name.
		implementors []*Type
	}

	// Field is a field of a type.
	Field struct {
		// Name of the field.
		Name string
		// Comment holds the model comment, if any.
		Comment string
		// Pos is the source position of the declaration.
		Pos string
		// Owner is the type declaring the field.
		Owner *Type
		// Ref is the declared GraphQL type reference.
		Ref *ast.Type
		// Scalar is set for scalar fields.
		Scalar ScalarKind
		// Target is the node or interface type of non-scalar fields.
		Target *Type
		// List reports if the field holds a list.
		List bool
		// Nullable reports if the outermost type is nullable.
		Nullable bool
		// Relationship holds the relationship declaration of the field, if any.
		Relationship *Relationship
	}

	// Relationship is a relationship declaration attached to a field.
	Relationship struct {
		// Label is the wire label of the relationship, e.g. ACTED_IN.
		Label string
		// Direction of the relationship relative to the owner.
		Direction Direction
		// Properties is the attribute record type, if any.
		Properties *Type
		// Abstract marks a declaration made on an interface that fixes the
		// shape only. Realizations on node types are not abstract.
		Abstract bool
	}

	// Ancestor is an interface reachable through implements edges.
	Ancestor struct {
		*Type
		// Depth is the length of the shortest implements path.
		Depth int
	}
)

// Type kinds.
const (
	KindNode Kind = iota + 1
	KindInterface
	KindProperties
)

// Cardinalities.
const (
	One Cardinality = iota + 1
	Many
)

// Relationship directions.
const (
	In  Direction = "IN"
	Out Direction = "OUT"
)

// Built-in scalars.
const (
	ScalarID ScalarKind = iota + 1
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarDateTime
)

var scalarNames = map[string]ScalarKind{
	"ID":       ScalarID,
	"String":   ScalarString,
	"Int":      ScalarInt,
	"Float":    ScalarFloat,
	"Boolean":  ScalarBoolean,
	"DateTime": ScalarDateTime,
}

// String returns the GraphQL name of the scalar.
func (s ScalarKind) String() string {
	for name, k := range scalarNames {
		if k == s {
			return name
		}
	}
	return "Invalid"
}

// Numeric reports if the scalar supports sum and average aggregation.
func (s ScalarKind) Numeric() bool {
	return s == ScalarInt || s == ScalarFloat
}

// Builtin reports if the scalar is part of the GraphQL specification.
func (s ScalarKind) Builtin() bool {
	return s != ScalarDateTime
}

// LookupScalar returns the scalar kind for the given name.
func LookupScalar(name string) (ScalarKind, bool) {
	k, ok := scalarNames[name]
	return k, ok
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindInterface:
		return "interface"
	case KindProperties:
		return "properties"
	default:
		return "invalid"
	}
}

// String returns the name of the cardinality.
func (c Cardinality) String() string {
	if c == Many {
		return "many"
	}
	return "one"
}

// IsInterface reports if the type is an interface.
func (t *Type) IsInterface() bool { return t.Kind == KindInterface }

// IsNode reports if the type is a concrete node type.
func (t *Type) IsNode() bool { return t.Kind == KindNode }

// IsProperties reports if the type is an attribute record.
func (t *Type) IsProperties() bool { return t.Kind == KindProperties }

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	return t.fields[name]
}

// ScalarFields returns the scalar fields in declaration order.
func (t *Type) ScalarFields() []*Field {
	var fs []*Field
	for _, f := range t.Fields {
		if f.IsScalar() {
			fs = append(fs, f)
		}
	}
	return fs
}

// Implementors returns the direct implementors of an interface, sorted by name.
func (t *Type) Implementors() []*Type {
	return t.implementors
}

// Concretes returns the node types implementing the interface directly or
// transitively, sorted by name. For a node type it returns the type itself.
func (t *Type) Concretes() []*Type {
	if t.IsNode() {
		return []*Type{t}
	}
	seen := make(map[*Type]bool)
	var out []*Type
	var walk func(*Type)
	walk = func(i *Type) {
		for _, impl := range i.implementors {
			if seen[impl] {
				continue
			}
			seen[impl] = true
			if impl.IsNode() {
				out = append(out, impl)
			} else {
				walk(impl)
			}
		}
	}
	walk(t)
	sortTypes(out)
	return out
}

// Ancestors returns all interfaces reachable through implements edges,
// ordered by depth and then by name.
func (t *Type) Ancestors() []Ancestor {
	var (
		out   []Ancestor
		seen  = map[*Type]bool{t: true}
		queue = []Ancestor{{Type: t}}
	)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, i := range cur.Implements {
			if seen[i] {
				continue
			}
			seen[i] = true
			a := Ancestor{Type: i, Depth: cur.Depth + 1}
			out = append(out, a)
			queue = append(queue, a)
		}
	}
	slices.SortStableFunc(out, func(a, b Ancestor) int {
		if a.Depth != b.Depth {
			return a.Depth - b.Depth
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// IsA reports if t is u or implements u directly or transitively.
func (t *Type) IsA(u *Type) bool {
	if t == u {
		return true
	}
	for _, a := range t.Ancestors() {
		if a.Type == u {
			return true
		}
	}
	return false
}

// IsScalar reports if the field holds a scalar value.
func (f *Field) IsScalar() bool { return f.Scalar != 0 }

// Cardinality returns Many for list fields and One otherwise.
func (f *Field) Cardinality() Cardinality {
	if f.List {
		return Many
	}
	return One
}

// IsDeclaration reports if the field carries an abstract relationship declaration.
func (f *Field) IsDeclaration() bool {
	return f.Relationship != nil && f.Relationship.Abstract
}

// IsRealization reports if the field carries a physical relationship.
func (f *Field) IsRealization() bool {
	return f.Relationship != nil && !f.Relationship.Abstract
}

// Properties returns the attribute record of the field relationship, or nil.
func (f *Field) Properties() *Type {
	if f.Relationship == nil {
		return nil
	}
	return f.Relationship.Properties
}

// TargetName returns the name of the field target type.
func (f *Field) TargetName() string {
	if f.Target != nil {
		return f.Target.Name
	}
	return f.Scalar.String()
}

// Location returns the location of the field for diagnostics.
func (f *Field) Location() Location {
	return Location{Type: f.Owner.Name, Field: f.Name, Pos: f.Pos}
}

// Shape formats the target and cardinality of the field, e.g. "[Actor]".
func (f *Field) Shape() string {
	if f.List {
		return "[" + f.TargetName() + "]"
	}
	return f.TargetName()
}

func sortTypes(ts []*Type) {
	slices.SortFunc(ts, func(a, b *Type) int {
		return strings.Compare(a.Name, b.Name)
	})
}
