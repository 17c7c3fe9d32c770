package load

import (
	"fmt"
	"os"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Directive names recognized by the SDL front end.
const (
	DirectiveRelationship           = "relationship"
	DirectiveDeclareRelationship    = "declareRelationship"
	DirectiveRelationshipProperties = "relationshipProperties"
)

// ParseSDL reads GraphQL type definitions annotated with the relationship
// directives and returns the loaded model. Object types become node types,
// or attribute records when marked with @relationshipProperties.
func ParseSDL(sources ...*ast.Source) (*Schema, error) {
	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	s := &Schema{}
	for _, def := range doc.Definitions {
		switch def.Kind {
		case ast.Scalar:
			// Custom scalars are referenced by name only.
			continue
		case ast.Object, ast.Interface:
		default:
			return nil, fmt.Errorf("%s: %s %q is not supported", position(def.Position), def.Kind, def.Name)
		}
		t, err := newType(def)
		if err != nil {
			return nil, err
		}
		s.Types = append(s.Types, t)
	}
	return s, nil
}

// ReadSDLFile reads and parses a GraphQL SDL file.
func ReadSDLFile(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSDL(&ast.Source{Name: path, Input: string(buf)})
}

func newType(def *ast.Definition) (*Type, error) {
	t := &Type{
		Name:       def.Name,
		Kind:       KindNode,
		Implements: append([]string(nil), def.Interfaces...),
		Comment:    def.Description,
		Pos:        position(def.Position),
	}
	switch {
	case def.Kind == ast.Interface:
		t.Kind = KindInterface
	case def.Directives.ForName(DirectiveRelationshipProperties) != nil:
		t.Kind = KindProperties
	}
	for _, fd := range def.Fields {
		f := &Field{
			Name:    fd.Name,
			Type:    fd.Type.String(),
			Comment: fd.Description,
			Pos:     position(fd.Position),
		}
		rel, err := newRelationship(fd)
		if err != nil {
			return nil, fmt.Errorf("%s: field %s.%s: %w", f.Pos, t.Name, f.Name, err)
		}
		f.Relationship = rel
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

func newRelationship(fd *ast.FieldDefinition) (*Relationship, error) {
	concrete := fd.Directives.ForName(DirectiveRelationship)
	declared := fd.Directives.ForName(DirectiveDeclareRelationship)
	switch {
	case concrete != nil && declared != nil:
		return nil, fmt.Errorf("@%s and @%s are mutually exclusive", DirectiveRelationship, DirectiveDeclareRelationship)
	case declared != nil:
		r := &Relationship{Declared: true}
		r.Type = argument(declared, "type")
		r.Direction = argument(declared, "direction")
		r.Properties = argument(declared, "properties")
		return r, nil
	case concrete != nil:
		r := &Relationship{
			Type:       argument(concrete, "type"),
			Direction:  argument(concrete, "direction"),
			Properties: argument(concrete, "properties"),
		}
		if r.Type == "" {
			return nil, fmt.Errorf("@%s requires a type argument", DirectiveRelationship)
		}
		if r.Direction == "" {
			return nil, fmt.Errorf("@%s requires a direction argument", DirectiveRelationship)
		}
		return r, nil
	}
	return nil, nil
}

func argument(d *ast.Directive, name string) string {
	arg := d.Arguments.ForName(name)
	if arg == nil || arg.Value == nil {
		return ""
	}
	return arg.Value.Raw
}

func position(pos *ast.Position) string {
	if pos == nil {
		return ""
	}
	name := "<input>"
	if pos.Src != nil && pos.Src.Name != "" {
		name = pos.Src.Name
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Column)
}
