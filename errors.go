package augment

import (
	"errors"

	"github.com/syssam/augment/compiler/gen"
)

// Sentinel errors matched by errors.Is against any error returned by Compile.
var (
	// ErrInvalidSchema is returned when the model fails graph validation.
	ErrInvalidSchema = gen.ErrInvalidSchema

	// ErrAmbiguousDeclaration is returned when two interfaces reachable from
	// one type declare the same relationship field incompatibly.
	ErrAmbiguousDeclaration = gen.ErrAmbiguousDeclaration

	// ErrRealizationMismatch is returned when a concrete type does not
	// realize a declared relationship field as declared.
	ErrRealizationMismatch = gen.ErrRealizationMismatch

	// ErrUnresolvedAbstractField matches the warnings of abstract fields
	// without realizations.
	ErrUnresolvedAbstractField = gen.ErrUnresolvedAbstractField

	// ErrGenerationFailed is returned when synthesized definitions conflict.
	ErrGenerationFailed = gen.ErrGenerationFailed
)

type (
	// SchemaError describes a model validation failure.
	SchemaError = gen.SchemaError
	// ConfigError describes an invalid option.
	ConfigError = gen.ConfigError
	// AmbiguousDeclarationError reports both conflicting declaring sites.
	AmbiguousDeclarationError = gen.AmbiguousDeclarationError
	// RealizationMismatchError reports a realization disagreeing with its site.
	RealizationMismatchError = gen.RealizationMismatchError
	// UnresolvedAbstractFieldWarning is returned in Result.Warnings.
	UnresolvedAbstractFieldWarning = gen.UnresolvedAbstractFieldWarning
	// GenerationError describes a failure while assembling the document.
	GenerationError = gen.GenerationError
	// AggregateError holds all fatal errors of a compile phase.
	AggregateError = gen.AggregateError
	// Location identifies a declaration in diagnostics.
	Location = gen.Location
)

// IsAmbiguousDeclaration returns true if err is or wraps an
// AmbiguousDeclarationError.
func IsAmbiguousDeclaration(err error) bool {
	return errors.Is(err, ErrAmbiguousDeclaration)
}

// IsRealizationMismatch returns true if err is or wraps a
// RealizationMismatchError.
func IsRealizationMismatch(err error) bool {
	return errors.Is(err, ErrRealizationMismatch)
}

// IsInvalidSchema returns true if err is or wraps a SchemaError.
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// Errors returns the individual errors of an AggregateError, or err itself.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg.Errors
	}
	return []error{err}
}
