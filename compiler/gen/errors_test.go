package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("Movie", "actors", "unknown type", cause)
		err.Pos = "schema.graphql:3:5"

		assert.Contains(t, err.Error(), "augment: schema error")
		assert.Contains(t, err.Error(), "type Movie")
		assert.Contains(t, err.Error(), "field actors")
		assert.Contains(t, err.Error(), "(schema.graphql:3:5)")
		assert.Contains(t, err.Error(), "unknown type")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := &SchemaError{Type: "Movie"}
		assert.Contains(t, err.Error(), "type Movie")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("Movie", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("Movie", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError("Movie", "title", "test", nil)
		assert.True(t, IsSchemaError(err))
		assert.True(t, IsSchemaError(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Indent", "x", "invalid indent")

		assert.Contains(t, err.Error(), "augment: config error")
		assert.Contains(t, err.Error(), "Indent")
		assert.Contains(t, err.Error(), "invalid indent")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Schema", nil, "cannot be nil")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Schema", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
	})
}

func TestAmbiguousDeclarationError(t *testing.T) {
	a := Location{Type: "Show", Field: "actors", Pos: "a.graphql:2:3"}
	b := Location{Type: "Production", Field: "actors"}
	err := NewAmbiguousDeclarationError("Movie", "actors", a, b, "cardinality one differs from many")

	assert.Contains(t, err.Error(), "ambiguous declaration of field actors")
	assert.Contains(t, err.Error(), "reachable from type Movie")
	assert.Contains(t, err.Error(), "Show.actors (a.graphql:2:3) conflicts with Production.actors")
	assert.Contains(t, err.Error(), "cardinality one differs from many")
	assert.True(t, errors.Is(err, ErrAmbiguousDeclaration))
	assert.True(t, IsAmbiguousDeclarationError(err))
	assert.False(t, IsRealizationMismatchError(err))
}

func TestRealizationMismatchError(t *testing.T) {
	site := Location{Type: "Production", Field: "actors"}
	err := NewRealizationMismatchError(site, "Movie", "m.graphql:4:2", "target Director is not compatible with Actor")

	assert.Contains(t, err.Error(), "realization mismatch on type Movie field actors (m.graphql:4:2)")
	assert.Contains(t, err.Error(), "declared by Production.actors")
	assert.Contains(t, err.Error(), "target Director")
	assert.True(t, errors.Is(err, ErrRealizationMismatch))
	assert.True(t, IsRealizationMismatchError(err))
}

func TestUnresolvedAbstractFieldWarning(t *testing.T) {
	w := &UnresolvedAbstractFieldWarning{Site: Location{Type: "Show", Field: "actors"}}
	assert.Equal(t, "augment: abstract field Show.actors is not realized by any concrete type", w.Error())
	assert.True(t, errors.Is(w, ErrUnresolvedAbstractField))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("boom")
	err := NewGenerationError("emit", "MovieWhere", "conflicting definition", cause)

	assert.Contains(t, err.Error(), "in phase emit")
	assert.Contains(t, err.Error(), "(definition: MovieWhere)")
	assert.Contains(t, err.Error(), "conflicting definition: boom")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsGenerationError(err))
}

func TestAggregateError(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		assert.NoError(t, NewAggregateError())
		assert.NoError(t, NewAggregateError(nil, nil))
	})

	t.Run("single error keeps message", func(t *testing.T) {
		inner := NewSchemaError("Movie", "", "bad", nil)
		err := NewAggregateError(nil, inner)
		require.Error(t, err)
		assert.Equal(t, inner.Error(), err.Error())
	})

	t.Run("multiple errors", func(t *testing.T) {
		mismatch := NewRealizationMismatchError(Location{Type: "I", Field: "f"}, "C", "", "missing")
		err := NewAggregateError(NewSchemaError("Movie", "", "bad", nil), mismatch)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "augment: 2 errors:")
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, errors.Is(err, ErrRealizationMismatch))
		assert.True(t, IsRealizationMismatchError(err))

		var agg *AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
	})
}
