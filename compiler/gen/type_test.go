package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/augment/compiler/load"
)

func field(name, typ string) *load.Field {
	return &load.Field{Name: name, Type: typ}
}

func rel(name, typ, label, dir, props string) *load.Field {
	return &load.Field{Name: name, Type: typ, Relationship: &load.Relationship{Type: label, Direction: dir, Properties: props}}
}

func declared(name, typ string) *load.Field {
	return &load.Field{Name: name, Type: typ, Relationship: &load.Relationship{Declared: true}}
}

func productions() *load.Schema {
	return &load.Schema{Types: []*load.Type{
		{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declared("actors", "[Actor!]!")}},
		{Name: "Production", Kind: load.KindInterface, Implements: []string{"Show"}, Fields: []*load.Field{
			field("title", "String!"),
			field("actors", "[Actor!]!"),
		}},
		{Name: "Movie", Implements: []string{"Production", "Show"}, Fields: []*load.Field{
			field("title", "String!"),
			field("released", "DateTime"),
			rel("actors", "[Actor!]!", "ACTED_IN", "IN", "ActedIn"),
		}},
		{Name: "Series", Implements: []string{"Production"}, Fields: []*load.Field{
			field("title", "String!"),
			rel("actors", "[Actor!]!", "ACTED_IN", "IN", "ActedIn"),
		}},
		{Name: "Actor", Fields: []*load.Field{field("name", "String!")}},
		{Name: "ActedIn", Kind: load.KindProperties, Fields: []*load.Field{field("screenTime", "Int!")}},
	}}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph(nil, productions())
	require.NoError(t, err)
	require.NotNil(t, g.Config)

	names := func(ts []*Type) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Actor", "Movie", "Series"}, names(g.Nodes()))
	assert.Equal(t, []string{"Production", "Show"}, names(g.Interfaces()))
	assert.Equal(t, []string{"ActedIn"}, names(g.Properties()))
	assert.Equal(t, []ScalarKind{ScalarDateTime}, g.Scalars())

	show := g.Type("Show")
	require.NotNil(t, show)
	assert.Equal(t, []string{"Movie", "Production"}, names(show.Implementors()))
	assert.Equal(t, []string{"Movie", "Series"}, names(show.Concretes()))

	movie := g.Type("Movie")
	ancestors := movie.Ancestors()
	require.Len(t, ancestors, 2)
	assert.Equal(t, "Production", ancestors[0].Name)
	assert.Equal(t, 1, ancestors[0].Depth)
	assert.Equal(t, "Show", ancestors[1].Name)
	assert.Equal(t, 1, ancestors[1].Depth)
	assert.True(t, movie.IsA(show))
	assert.True(t, g.Type("Series").IsA(show))
	assert.False(t, g.Type("Actor").IsA(show))

	actors := movie.Field("actors")
	require.NotNil(t, actors)
	assert.True(t, actors.IsRealization())
	assert.False(t, actors.IsDeclaration())
	assert.Equal(t, Many, actors.Cardinality())
	assert.False(t, actors.Nullable)
	assert.Equal(t, "ActedIn", actors.Properties().Name)
	assert.Equal(t, In, actors.Relationship.Direction)
	assert.Equal(t, "[Actor]", actors.Shape())

	assert.True(t, show.Field("actors").IsDeclaration())
	assert.Nil(t, g.Type("Production").Field("actors").Relationship)

	released := movie.Field("released")
	assert.Equal(t, ScalarDateTime, released.Scalar)
	assert.True(t, released.Nullable)
	assert.Equal(t, One, released.Cardinality())
	assert.Len(t, movie.ScalarFields(), 2)
}

func TestNewGraphErrors(t *testing.T) {
	tests := []struct {
		name   string
		types  []*load.Type
		errMsg string
	}{
		{
			name:   "duplicate type",
			types:  []*load.Type{{Name: "A", Fields: []*load.Field{field("x", "Int")}}, {Name: "A", Fields: []*load.Field{field("x", "Int")}}},
			errMsg: "declared more than once",
		},
		{
			name:   "scalar name",
			types:  []*load.Type{{Name: "String", Fields: []*load.Field{field("x", "Int")}}},
			errMsg: "reserved for a scalar",
		},
		{
			name:   "root name",
			types:  []*load.Type{{Name: "Query", Fields: []*load.Field{field("x", "Int")}}},
			errMsg: "reserved for a root operation type",
		},
		{
			name:   "unknown kind",
			types:  []*load.Type{{Name: "A", Kind: "enum", Fields: []*load.Field{field("x", "Int")}}},
			errMsg: `unknown kind "enum"`,
		},
		{
			name:   "no fields",
			types:  []*load.Type{{Name: "A"}},
			errMsg: "at least one field",
		},
		{
			name:   "unknown implements",
			types:  []*load.Type{{Name: "A", Implements: []string{"I"}, Fields: []*load.Field{field("x", "Int")}}},
			errMsg: `implements unknown type "I"`,
		},
		{
			name: "implements node",
			types: []*load.Type{
				{Name: "A", Implements: []string{"B"}, Fields: []*load.Field{field("x", "Int")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "not an interface",
		},
		{
			name: "implements cycle",
			types: []*load.Type{
				{Name: "I", Kind: load.KindInterface, Implements: []string{"J"}, Fields: []*load.Field{field("x", "Int")}},
				{Name: "J", Kind: load.KindInterface, Implements: []string{"I"}, Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "implements cycle",
		},
		{
			name:   "duplicate field",
			types:  []*load.Type{{Name: "A", Fields: []*load.Field{field("x", "Int"), field("x", "String")}}},
			errMsg: "field is declared more than once",
		},
		{
			name:   "unknown field type",
			types:  []*load.Type{{Name: "A", Fields: []*load.Field{field("x", "Long")}}},
			errMsg: `unknown type "Long"`,
		},
		{
			name:   "bad type ref",
			types:  []*load.Type{{Name: "A", Fields: []*load.Field{field("x", "[[Int]]")}}},
			errMsg: "nested lists",
		},
		{
			name: "node field without relationship",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{field("b", "B")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "must declare a relationship",
		},
		{
			name:   "relationship on scalar",
			types:  []*load.Type{{Name: "A", Fields: []*load.Field{rel("x", "Int", "X", "OUT", "")}}},
			errMsg: "must target a node or interface",
		},
		{
			name: "abstract on node",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{declared("b", "B")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "only allowed on interfaces",
		},
		{
			name: "realization on interface",
			types: []*load.Type{
				{Name: "I", Kind: load.KindInterface, Fields: []*load.Field{rel("b", "B", "X", "OUT", "")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "only declare relationships abstractly",
		},
		{
			name: "bad direction",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{rel("b", "B", "X", "UP", "")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "invalid relationship direction",
		},
		{
			name: "missing label",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{rel("b", "B", "", "OUT", "")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "relationship has no type",
		},
		{
			name: "properties is not a record",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{rel("b", "B", "X", "OUT", "B")}},
				{Name: "B", Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "is not an attribute record",
		},
		{
			name: "record as field type",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{rel("b", "P", "X", "OUT", "")}},
				{Name: "P", Kind: load.KindProperties, Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "cannot be used as a field type",
		},
		{
			name: "record with node field",
			types: []*load.Type{
				{Name: "A", Fields: []*load.Field{field("x", "Int")}},
				{Name: "P", Kind: load.KindProperties, Fields: []*load.Field{field("a", "A")}},
			},
			errMsg: "only hold scalar fields",
		},
		{
			name: "interface field not re-exposed",
			types: []*load.Type{
				{Name: "I", Kind: load.KindInterface, Fields: []*load.Field{field("title", "String!")}},
				{Name: "A", Implements: []string{"I"}, Fields: []*load.Field{field("x", "Int")}},
			},
			errMsg: "does not re-expose field of interface I",
		},
		{
			name: "interface field re-exposed with other type",
			types: []*load.Type{
				{Name: "I", Kind: load.KindInterface, Fields: []*load.Field{field("title", "String!")}},
				{Name: "A", Implements: []string{"I"}, Fields: []*load.Field{field("title", "[String!]")}},
			},
			errMsg: "has type [String] but interface I declares String",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(&Config{}, &load.Schema{Types: tt.types})
			require.Error(t, err)
			assert.True(t, IsSchemaError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewGraphCollectsErrors(t *testing.T) {
	_, err := NewGraph(nil, &load.Schema{Types: []*load.Type{
		{Name: "A", Fields: []*load.Field{field("x", "Long")}},
		{Name: "B", Fields: []*load.Field{field("y", "Short")}},
	}})
	require.Error(t, err)
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 2)
}

func TestNewGraphNilSchema(t *testing.T) {
	_, err := NewGraph(nil, nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestScalarKind(t *testing.T) {
	for name, k := range scalarNames {
		got, ok := LookupScalar(name)
		require.True(t, ok)
		assert.Equal(t, k, got)
		assert.Equal(t, name, k.String())
	}
	assert.True(t, ScalarInt.Numeric())
	assert.False(t, ScalarString.Numeric())
	assert.False(t, ScalarDateTime.Builtin())
	assert.Equal(t, "node", KindNode.String())
	assert.Equal(t, "many", Many.String())
}
