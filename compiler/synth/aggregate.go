package synth

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
)

// aggregation is one aggregate function of a scalar field.
type aggregation struct {
	// name is appended to the field name, e.g. Average.
	name string
	// scalar is the type of the aggregated value.
	scalar string
}

var comparators = []string{"EQ", "GT", "GTE", "LT", "LTE"}

// aggregatable reports if aggregation predicates and selections exist for f.
func aggregatable(f *gen.Field) bool {
	if !f.IsScalar() || f.List {
		return false
	}
	switch f.Scalar {
	case gen.ScalarInt, gen.ScalarFloat, gen.ScalarString, gen.ScalarDateTime:
		return true
	}
	return false
}

func aggregatableFields(t *gen.Type) []*gen.Field {
	var fs []*gen.Field
	for _, f := range t.ScalarFields() {
		if aggregatable(f) {
			fs = append(fs, f)
		}
	}
	return fs
}

func aggregations(f *gen.Field) []aggregation {
	switch f.Scalar {
	case gen.ScalarInt:
		return []aggregation{{"Average", "Float"}, {"Max", "Int"}, {"Min", "Int"}, {"Sum", "Int"}}
	case gen.ScalarFloat:
		return []aggregation{{"Average", "Float"}, {"Max", "Float"}, {"Min", "Float"}, {"Sum", "Float"}}
	case gen.ScalarString:
		return []aggregation{{"AverageLength", "Float"}, {"LongestLength", "Int"}, {"ShortestLength", "Int"}}
	case gen.ScalarDateTime:
		return []aggregation{{"Max", "DateTime"}, {"Min", "DateTime"}}
	}
	return nil
}

// aggregationPredicates returns the aggregation where fields of t,
// e.g. screenTimeSumGT: Int.
func aggregationPredicates(t *gen.Type) ast.FieldList {
	var fields ast.FieldList
	for _, f := range aggregatableFields(t) {
		for _, a := range aggregations(f) {
			for _, c := range comparators {
				fields = append(fields, field(f.Name+a.name+c, named(a.scalar)))
			}
		}
	}
	return fields
}

// aggregationWhere returns an aggregation where input over the fields of t,
// or nil if t has no aggregatable fields.
func aggregationWhere(name string, t *gen.Type) *ast.Definition {
	preds := aggregationPredicates(t)
	if len(preds) == 0 {
		return nil
	}
	return input(name, append(logical(name), preds...))
}

// selectionType returns the helper selection object of an aggregatable field.
func selectionType(f *gen.Field) string {
	return f.Scalar.String() + "AggregateSelection"
}

// aggregateSelection returns an object selecting the aggregates of the
// fields of t, with an optional count field.
func aggregateSelection(name string, t *gen.Type, count bool) *ast.Definition {
	var fields ast.FieldList
	if count {
		fields = append(fields, field("count", nonNull("Int")))
	}
	for _, f := range aggregatableFields(t) {
		fields = append(fields, field(f.Name, nonNull(selectionType(f))))
	}
	return object(name, fields)
}
