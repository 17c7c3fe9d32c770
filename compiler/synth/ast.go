package synth

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
)

// named returns a nullable named type.
func named(name string) *ast.Type {
	return ast.NamedType(name, nil)
}

// nonNull returns a non-null named type.
func nonNull(name string) *ast.Type {
	return ast.NonNullNamedType(name, nil)
}

// listOf returns [name!].
func listOf(name string) *ast.Type {
	return ast.ListType(nonNull(name), nil)
}

// nonNullListOf returns [name!]!.
func nonNullListOf(name string) *ast.Type {
	return ast.NonNullListType(nonNull(name), nil)
}

// many returns [name!] for Many cardinality and name otherwise.
func many(c gen.Cardinality, name string) *ast.Type {
	if c == gen.Many {
		return listOf(name)
	}
	return named(name)
}

// optional returns a copy of t with the outermost non-null removed.
func optional(t *ast.Type) *ast.Type {
	c := clone(t)
	c.NonNull = false
	return c
}

func clone(t *ast.Type) *ast.Type {
	if t == nil {
		return nil
	}
	return &ast.Type{NamedType: t.NamedType, Elem: clone(t.Elem), NonNull: t.NonNull}
}

func field(name string, typ *ast.Type, args ...*ast.ArgumentDefinition) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Type: typ, Arguments: args}
}

func arg(name string, typ *ast.Type) *ast.ArgumentDefinition {
	return &ast.ArgumentDefinition{Name: name, Type: typ}
}

// object returns an object type, or nil if it has no fields.
func object(name string, fields ast.FieldList) *ast.Definition {
	if len(fields) == 0 {
		return nil
	}
	return &ast.Definition{Kind: ast.Object, Name: name, Fields: fields}
}

// input returns an input object type, or nil if it has no fields.
func input(name string, fields ast.FieldList) *ast.Definition {
	if len(fields) == 0 {
		return nil
	}
	return &ast.Definition{Kind: ast.InputObject, Name: name, Fields: fields}
}

// logical returns the AND, OR and NOT fields of a filter input.
func logical(name string) ast.FieldList {
	return ast.FieldList{
		field("AND", listOf(name)),
		field("OR", listOf(name)),
		field("NOT", named(name)),
	}
}

// defName returns the name of def, or "" for nil.
func defName(def *ast.Definition) string {
	if def == nil {
		return ""
	}
	return def.Name
}
