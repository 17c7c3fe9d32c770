package resolve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/load"
)

func scalar(name, typ string) *load.Field {
	return &load.Field{Name: name, Type: typ}
}

func realize(name, typ, props string) *load.Field {
	return &load.Field{Name: name, Type: typ, Relationship: &load.Relationship{Type: "ACTED_IN", Direction: load.DirectionIn, Properties: props}}
}

func declare(name, typ string) *load.Field {
	return &load.Field{Name: name, Type: typ, Relationship: &load.Relationship{Declared: true}}
}

func actor() *load.Type {
	return &load.Type{Name: "Actor", Fields: []*load.Field{scalar("name", "String!")}}
}

func record(name string) *load.Type {
	return &load.Type{Name: name, Kind: load.KindProperties, Fields: []*load.Field{scalar("screenTime", "Int!")}}
}

func graph(t *testing.T, types ...*load.Type) *gen.Graph {
	t.Helper()
	g, err := gen.NewGraph(nil, &load.Schema{Types: types})
	require.NoError(t, err)
	return g
}

func siteNames(r *Result) []string {
	var names []string
	for _, s := range r.Sites() {
		names = append(names, s.Name())
	}
	return names
}

func realizers(s *Site) []string {
	var names []string
	for _, r := range s.Realizations {
		names = append(names, r.Type.Name)
	}
	return names
}

func TestResolveConcreteOnly(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{scalar("title", "String!")}},
		&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{scalar("title", "String!")}},
		&load.Type{Name: "Actor", Fields: []*load.Field{
			scalar("name", "String!"),
			realize("actedIn", "[Production!]!", "ActedIn"),
		}},
		record("ActedIn"),
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"ActorActedIn"}, siteNames(res))
	assert.Empty(t, res.Warnings)

	a := g.Type("Actor")
	site := res.Primary(a, "actedIn")
	require.NotNil(t, site)
	assert.False(t, site.Polymorphic())
	assert.Same(t, a, site.Owner)
	assert.Same(t, site, res.Owned(a, "actedIn"))
	assert.Equal(t, []string{"Actor"}, realizers(site))
	assert.Equal(t, "ActedIn", site.Realizations[0].Properties().Name)
	assert.Nil(t, res.Primary(a, "name"))
	assert.Nil(t, res.Owned(g.Type("Production"), "actors"))
}

func TestResolveInterfaceSite(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{
			scalar("title", "String!"),
			declare("actors", "[Actor!]!"),
		}},
		&load.Type{Name: "Series", Implements: []string{"Production"}, Fields: []*load.Field{
			scalar("title", "String!"),
			realize("actors", "[Actor!]!", "StarredIn"),
		}},
		&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{
			scalar("title", "String!"),
			realize("actors", "[Actor!]!", "ActedIn"),
		}},
		actor(),
		record("ActedIn"),
		record("StarredIn"),
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"ProductionActors"}, siteNames(res))

	site := res.Owned(g.Type("Production"), "actors")
	require.NotNil(t, site)
	assert.True(t, site.Polymorphic())
	assert.Equal(t, "Actor", site.Target().Name)
	assert.Equal(t, gen.Many, site.Cardinality())
	assert.Equal(t, []string{"Movie", "Series"}, realizers(site))
	assert.Same(t, site, res.Primary(g.Type("Movie"), "actors"))
	assert.Same(t, site, res.Primary(g.Type("Series"), "actors"))
	require.NotNil(t, site.Realization(g.Type("Series")))
	assert.Equal(t, "StarredIn", site.Realization(g.Type("Series")).Properties().Name)
	assert.Nil(t, site.Realization(g.Type("Actor")))
}

func TestResolvePassThrough(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
		&load.Type{Name: "Production", Kind: load.KindInterface, Implements: []string{"Show"}, Fields: []*load.Field{
			scalar("title", "String!"),
			scalar("actors", "[Actor!]!"),
		}},
		&load.Type{Name: "Movie", Implements: []string{"Production", "Show"}, Fields: []*load.Field{
			scalar("title", "String!"),
			realize("actors", "[Actor!]!", ""),
		}},
		actor(),
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"ShowActors"}, siteNames(res))

	production := g.Type("Production")
	show := res.Owned(g.Type("Show"), "actors")
	require.NotNil(t, show)
	assert.Nil(t, res.Owned(production, "actors"))
	assert.Same(t, show, res.PassThrough(production, "actors"))
	assert.Nil(t, res.PassThrough(production, "title"))
	assert.Same(t, show, res.Primary(g.Type("Movie"), "actors"))
	assert.Equal(t, []string{"Movie"}, realizers(show))
}

func TestResolveNearestDeclarer(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
		&load.Type{Name: "Production", Kind: load.KindInterface, Implements: []string{"Show"}, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
		&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "[Actor!]!", "ActedIn")}},
		actor(),
		record("ActedIn"),
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"ProductionActors", "ShowActors"}, siteNames(res)); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}
	movie := g.Type("Movie")
	assert.Equal(t, "ProductionActors", res.Primary(movie, "actors").Name())
	// Both declaring interfaces see the realization.
	assert.Equal(t, []string{"Movie"}, realizers(res.Owned(g.Type("Show"), "actors")))
	assert.Equal(t, []string{"Movie"}, realizers(res.Owned(g.Type("Production"), "actors")))
}

func TestResolveInterfaceTarget(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Person", Kind: load.KindInterface, Fields: []*load.Field{scalar("name", "String!")}},
		&load.Type{Name: "Actor", Implements: []string{"Person"}, Fields: []*load.Field{scalar("name", "String!")}},
		&load.Type{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("cast", "[Person!]!")}},
		&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("cast", "[Actor!]!", "")}},
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, "Person", res.Primary(g.Type("Movie"), "cast").Target().Name)
}

func TestResolveUnresolvedAbstractField(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
		actor(),
	)
	res, err := Resolve(g)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.Is(res.Warnings[0], gen.ErrUnresolvedAbstractField))
	assert.Contains(t, res.Warnings[0].Error(), "Show.actors")
	assert.Empty(t, res.Owned(g.Type("Show"), "actors").Realizations)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		types    []*load.Type
		sentinel error
		msg      string
	}{
		{
			name: "ambiguous cardinality",
			types: []*load.Type{
				{Name: "Cast", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Lead", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "Actor")}},
				{Name: "Movie", Implements: []string{"Cast", "Lead"}, Fields: []*load.Field{realize("actors", "[Actor!]!", "")}},
				actor(),
			},
			sentinel: gen.ErrAmbiguousDeclaration,
			msg:      "Cast.actors conflicts with Lead.actors: cardinality many differs from one",
		},
		{
			name: "ambiguous target",
			types: []*load.Type{
				{Name: "Cast", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Crew", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Director!]!")}},
				{Name: "Movie", Implements: []string{"Cast", "Crew"}, Fields: []*load.Field{realize("actors", "[Actor!]!", "")}},
				actor(),
				{Name: "Director", Fields: []*load.Field{scalar("name", "String!")}},
			},
			sentinel: gen.ErrAmbiguousDeclaration,
			msg:      "target Actor differs from Director",
		},
		{
			name: "ambiguous redeclaration",
			types: []*load.Type{
				{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Production", Kind: load.KindInterface, Implements: []string{"Show"}, Fields: []*load.Field{declare("actors", "Actor")}},
				actor(),
			},
			sentinel: gen.ErrAmbiguousDeclaration,
			msg:      "reachable from type Production",
		},
		{
			name: "wrong target",
			types: []*load.Type{
				{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "[Director!]!", "")}},
				actor(),
				{Name: "Director", Fields: []*load.Field{scalar("name", "String!")}},
			},
			sentinel: gen.ErrRealizationMismatch,
			msg:      "target Director is not compatible with Actor",
		},
		{
			name: "wrong cardinality",
			types: []*load.Type{
				{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "Actor", "")}},
				actor(),
			},
			sentinel: gen.ErrRealizationMismatch,
			msg:      "cardinality one differs from many",
		},
		{
			name: "scalar realization",
			types: []*load.Type{
				{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{scalar("actors", "String")}},
				actor(),
			},
			sentinel: gen.ErrRealizationMismatch,
			msg:      "target String is not a node or interface",
		},
		{
			name: "missing realization",
			types: []*load.Type{
				{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{scalar("title", "String")}},
				actor(),
			},
			sentinel: gen.ErrRealizationMismatch,
			msg:      "missing realization",
		},
		{
			name: "pass-through mismatch",
			types: []*load.Type{
				{Name: "Show", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
				{Name: "Production", Kind: load.KindInterface, Implements: []string{"Show"}, Fields: []*load.Field{scalar("actors", "Actor")}},
				actor(),
			},
			sentinel: gen.ErrRealizationMismatch,
			msg:      "realization mismatch on type Production",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(graph(t, tt.types...))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.sentinel), err.Error())
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestResolveReportsAllErrors(t *testing.T) {
	g := graph(t,
		&load.Type{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
		&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "Actor", "")}},
		&load.Type{Name: "Series", Implements: []string{"Production"}, Fields: []*load.Field{scalar("title", "String")}},
		actor(),
	)
	_, err := Resolve(g)
	require.Error(t, err)
	var agg *gen.AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 2)
	assert.Contains(t, agg.Errors[0].Error(), "type Movie")
	assert.Contains(t, agg.Errors[1].Error(), "type Series")
}

func TestResolveDeterministic(t *testing.T) {
	build := func() []string {
		g := graph(t,
			&load.Type{Name: "Production", Kind: load.KindInterface, Fields: []*load.Field{declare("actors", "[Actor!]!")}},
			&load.Type{Name: "Series", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "[Actor!]!", "")}},
			&load.Type{Name: "Movie", Implements: []string{"Production"}, Fields: []*load.Field{realize("actors", "[Actor!]!", "")}},
			&load.Type{Name: "Actor", Fields: []*load.Field{realize("movies", "[Movie!]!", "")}},
		)
		res, err := Resolve(g)
		require.NoError(t, err)
		out := siteNames(res)
		for _, s := range res.Sites() {
			out = append(out, realizers(s)...)
		}
		return out
	}
	first := build()
	assert.Equal(t, []string{"ActorMovies", "ProductionActors", "Actor", "Movie", "Series"}, first)
	assert.Equal(t, first, build())
}
