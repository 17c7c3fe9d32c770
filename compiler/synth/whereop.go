package synth

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
)

// WhereOp is a set of scalar filter predicates generated into a where input.
type WhereOp uint32

// Individual filter operations.
const (
	// OpEQ generates the equality predicate (e.g., title: String).
	OpEQ WhereOp = 1 << iota
	// OpNEQ generates the not-equal predicate (e.g., titleNEQ: String).
	OpNEQ
	// OpIn generates the in predicate (e.g., idIn: [ID!]).
	OpIn
	// OpNotIn generates the not-in predicate (e.g., idNotIn: [ID!]).
	OpNotIn
	// OpGT generates the greater-than predicate (e.g., screenTimeGT: Int).
	OpGT
	// OpGTE generates the greater-than-or-equal predicate.
	OpGTE
	// OpLT generates the less-than predicate.
	OpLT
	// OpLTE generates the less-than-or-equal predicate.
	OpLTE
	// OpContains generates the contains predicate (e.g., titleContains: String).
	OpContains
	// OpHasPrefix generates the has-prefix predicate.
	OpHasPrefix
	// OpHasSuffix generates the has-suffix predicate.
	OpHasSuffix
	// OpEqualFold generates the case-insensitive equality predicate.
	OpEqualFold
	// OpContainsFold generates the case-insensitive contains predicate.
	OpContainsFold
	// OpIsNil generates the is-null predicate (e.g., releasedIsNil: Boolean).
	OpIsNil
	// OpNotNil generates the is-not-null predicate.
	OpNotNil
)

// Common operation sets.
const (
	OpsNone       WhereOp = 0
	OpsEquality           = OpEQ | OpNEQ | OpIn | OpNotIn
	OpsNullable           = OpIsNil | OpNotNil
	OpsComparison         = OpsEquality | OpGT | OpGTE | OpLT | OpLTE
	OpsSubstring          = OpContains | OpHasPrefix | OpHasSuffix
	OpsCaseFold           = OpEqualFold | OpContainsFold
	OpsString             = OpsEquality | OpsSubstring | OpsCaseFold
	OpsAll                = OpsComparison | OpsSubstring | OpsCaseFold | OpsNullable
)

// Has reports if all operations of flag are set.
func (op WhereOp) Has(flag WhereOp) bool { return op&flag == flag }

var opSuffixes = []struct {
	op     WhereOp
	suffix string
}{
	{OpEQ, ""},
	{OpNEQ, "NEQ"},
	{OpIn, "In"},
	{OpNotIn, "NotIn"},
	{OpGT, "GT"},
	{OpGTE, "GTE"},
	{OpLT, "LT"},
	{OpLTE, "LTE"},
	{OpContains, "Contains"},
	{OpHasPrefix, "HasPrefix"},
	{OpHasSuffix, "HasSuffix"},
	{OpEqualFold, "EqualFold"},
	{OpContainsFold, "ContainsFold"},
	{OpIsNil, "IsNil"},
	{OpNotNil, "NotNil"},
}

// DefaultOps returns the filter operations generated for a scalar field.
func DefaultOps(f *gen.Field) WhereOp {
	var ops WhereOp
	switch {
	case f.List:
		ops = OpEQ | OpNEQ
	case f.Scalar == gen.ScalarID:
		ops = OpsEquality
	case f.Scalar == gen.ScalarBoolean:
		ops = OpEQ | OpNEQ
	case f.Scalar == gen.ScalarString:
		ops = OpsString
	default:
		ops = OpsComparison
	}
	if f.Nullable {
		ops |= OpsNullable
	}
	return ops
}

// predicates returns the where input fields of a scalar field.
func predicates(f *gen.Field) ast.FieldList {
	var (
		ops    = DefaultOps(f)
		scalar = f.Scalar.String()
		fields ast.FieldList
	)
	for _, s := range opSuffixes {
		if !ops.Has(s.op) {
			continue
		}
		var typ *ast.Type
		switch {
		case s.op == OpIsNil || s.op == OpNotNil:
			typ = named("Boolean")
		case f.List:
			typ = listOf(scalar)
		case s.op == OpIn || s.op == OpNotIn:
			typ = listOf(scalar)
		default:
			typ = named(scalar)
		}
		fields = append(fields, field(f.Name+s.suffix, typ))
	}
	return fields
}

// sortable reports if a field can be used for ordering.
func sortable(f *gen.Field) bool {
	return f.IsScalar() && !f.List
}

// sortFields returns the sort input fields of t.
func sortFields(t *gen.Type) ast.FieldList {
	var fields ast.FieldList
	for _, f := range t.ScalarFields() {
		if sortable(f) {
			fields = append(fields, field(f.Name, named("SortDirection")))
		}
	}
	return fields
}

// hasSort reports if t has a sort input.
func hasSort(t *gen.Type) bool {
	return len(sortFields(t)) > 0
}
