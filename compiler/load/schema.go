// Package load defines the serializable model consumed by the augment
// compiler and the front ends that produce it.
package load

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Kind is the kind of a declared type.
type Kind string

// Type kinds.
const (
	// KindNode is a concrete, instantiable node type.
	KindNode Kind = "node"
	// KindInterface is a polymorphic contract implemented by node types.
	KindInterface Kind = "interface"
	// KindProperties is an attribute record describing relationship metadata.
	KindProperties Kind = "properties"
)

// Relationship directions.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Schema represents a model loaded from a front end.
type Schema struct {
	Types []*Type `json:"types,omitempty" yaml:"types,omitempty" msgpack:"types"`
}

// Type represents a declared node, interface or attribute record.
type Type struct {
	Name       string   `json:"name" yaml:"name" msgpack:"name"`
	Kind       Kind     `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind"`
	Implements []string `json:"implements,omitempty" yaml:"implements,omitempty" msgpack:"implements"`
	Fields     []*Field `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment"`
	// Pos is the source location of the declaration, used in error messages.
	Pos string `json:"-" yaml:"-" msgpack:"-"`
}

// Field represents a field of a declared type. Type is a GraphQL type
// reference, for example "String!" or "[Actor!]!".
type Field struct {
	Name         string        `json:"name" yaml:"name" msgpack:"name"`
	Type         string        `json:"type" yaml:"type" msgpack:"type"`
	Relationship *Relationship `json:"relationship,omitempty" yaml:"relationship,omitempty" msgpack:"relationship"`
	Comment      string        `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment"`
	Pos          string        `json:"-" yaml:"-" msgpack:"-"`
}

// Relationship represents a relationship declaration attached to a field.
// Declared marks an abstract declaration made on an interface; otherwise
// the relationship is a physical realization on a node type.
type Relationship struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type"`
	Direction  string `json:"direction,omitempty" yaml:"direction,omitempty" msgpack:"direction"`
	Properties string `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties"`
	Declared   bool   `json:"declared,omitempty" yaml:"declared,omitempty" msgpack:"declared"`
}

// KindOf returns the kind of the type, defaulting to KindNode.
func (t *Type) KindOf() Kind {
	if t.Kind == "" {
		return KindNode
	}
	return t.Kind
}

// Location returns the position of the type or its name.
func (t *Type) Location() string {
	if t.Pos != "" {
		return t.Pos
	}
	return t.Name
}

// Location returns the position of the field or a type-qualified name.
func (f *Field) Location(owner string) string {
	if f.Pos != "" {
		return f.Pos
	}
	return owner + "." + f.Name
}

// TypeRef parses the field type reference.
func (f *Field) TypeRef() (*ast.Type, error) {
	t, err := ParseTypeRef(f.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return t, nil
}

// ParseTypeRef parses a GraphQL type reference such as "[Movie!]!".
func ParseTypeRef(s string) (*ast.Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type reference")
	}
	var t *ast.Type
	nonNull := strings.HasSuffix(s, "!")
	body := strings.TrimSpace(strings.TrimSuffix(s, "!"))
	switch {
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]"):
		elem, err := ParseTypeRef(body[1 : len(body)-1])
		if err != nil {
			return nil, fmt.Errorf("type reference %q: %w", s, err)
		}
		if elem.Elem != nil {
			return nil, fmt.Errorf("type reference %q: nested lists are not supported", s)
		}
		t = ast.ListType(elem, nil)
	case isName(body):
		t = ast.NamedType(body, nil)
	default:
		return nil, fmt.Errorf("invalid type reference %q", s)
	}
	t.NonNull = nonNull
	return t, nil
}

// Type returns the declared type with the given name, or nil.
func (s *Schema) Type(name string) *Type {
	for _, t := range s.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
