package synth

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// helpers holds the structurally shared definitions. They are interned on
// first reference by any synthesized definition.
var helpers = map[string]func() *ast.Definition{
	"PageInfo": func() *ast.Definition {
		return object("PageInfo", ast.FieldList{
			field("hasNextPage", nonNull("Boolean")),
			field("hasPreviousPage", nonNull("Boolean")),
			field("startCursor", named("String")),
			field("endCursor", named("String")),
		})
	},
	"SortDirection": func() *ast.Definition {
		return &ast.Definition{
			Kind: ast.Enum,
			Name: "SortDirection",
			EnumValues: ast.EnumValueList{
				{Name: "ASC", Description: "Sort by field values in ascending order."},
				{Name: "DESC", Description: "Sort by field values in descending order."},
			},
		}
	},
	"CreateInfo": func() *ast.Definition {
		return object("CreateInfo", ast.FieldList{
			field("nodesCreated", nonNull("Int")),
			field("relationshipsCreated", nonNull("Int")),
		})
	},
	"UpdateInfo": func() *ast.Definition {
		return object("UpdateInfo", ast.FieldList{
			field("nodesCreated", nonNull("Int")),
			field("nodesDeleted", nonNull("Int")),
			field("relationshipsCreated", nonNull("Int")),
			field("relationshipsDeleted", nonNull("Int")),
		})
	},
	"DeleteInfo": func() *ast.Definition {
		return object("DeleteInfo", ast.FieldList{
			field("nodesDeleted", nonNull("Int")),
			field("relationshipsDeleted", nonNull("Int")),
		})
	},
	"IntAggregateSelection": func() *ast.Definition {
		return object("IntAggregateSelection", ast.FieldList{
			field("average", named("Float")),
			field("max", named("Int")),
			field("min", named("Int")),
			field("sum", named("Int")),
		})
	},
	"FloatAggregateSelection": func() *ast.Definition {
		return object("FloatAggregateSelection", ast.FieldList{
			field("average", named("Float")),
			field("max", named("Float")),
			field("min", named("Float")),
			field("sum", named("Float")),
		})
	},
	"StringAggregateSelection": func() *ast.Definition {
		return object("StringAggregateSelection", ast.FieldList{
			field("longest", named("String")),
			field("shortest", named("String")),
		})
	},
	"DateTimeAggregateSelection": func() *ast.Definition {
		return object("DateTimeAggregateSelection", ast.FieldList{
			field("max", named("DateTime")),
			field("min", named("DateTime")),
		})
	},
	"DateTime": func() *ast.Definition {
		return &ast.Definition{
			Kind:        ast.Scalar,
			Name:        "DateTime",
			Description: "A date and time, represented as an ISO-8601 string",
		}
	},
}

// references returns the names of all types referenced by the fields and
// arguments of def.
func references(def *ast.Definition) []string {
	var names []string
	for _, f := range def.Fields {
		names = append(names, f.Type.Name())
		for _, a := range f.Arguments {
			names = append(names, a.Type.Name())
		}
	}
	return names
}
