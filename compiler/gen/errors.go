package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a model definition error.
	ErrInvalidSchema = errors.New("augment: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("augment: missing configuration")
	// ErrAmbiguousDeclaration indicates two incompatible abstract declarations
	// of one field reachable from the same type.
	ErrAmbiguousDeclaration = errors.New("augment: ambiguous relationship declaration")
	// ErrRealizationMismatch indicates a realization that disagrees with its site.
	ErrRealizationMismatch = errors.New("augment: relationship realization mismatch")
	// ErrUnresolvedAbstractField indicates an abstract declaration without realizations.
	ErrUnresolvedAbstractField = errors.New("augment: unresolved abstract field")
	// ErrGenerationFailed indicates a schema generation failure.
	ErrGenerationFailed = errors.New("augment: generation failed")
)

// SchemaError represents a model definition error.
type SchemaError struct {
	Type    string // Declared type name
	Field   string // Field name (if applicable)
	Pos     string // Source position (if known)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("augment: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Pos != "" {
		b.WriteString(" (")
		b.WriteString(e.Pos)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("augment: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("augment: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// Location identifies a relationship declaration in the model.
type Location struct {
	Type  string
	Field string
	Pos   string
}

// String formats the location as Type.field, followed by the position if known.
func (l Location) String() string {
	s := l.Type + "." + l.Field
	if l.Pos != "" {
		s += " (" + l.Pos + ")"
	}
	return s
}

// AmbiguousDeclarationError is reported when two ancestor interfaces of one
// type declare the same field with incompatible target or cardinality.
type AmbiguousDeclarationError struct {
	Type    string      // Type that reaches both declarations
	Field   string      // Declared field name
	Sites   [2]Location // The conflicting declaring sites
	Message string
}

// Error implements the error interface.
func (e *AmbiguousDeclarationError) Error() string {
	var b strings.Builder
	b.WriteString("augment: ambiguous declaration of field ")
	b.WriteString(e.Field)
	if e.Type != "" {
		b.WriteString(" reachable from type ")
		b.WriteString(e.Type)
	}
	fmt.Fprintf(&b, ": %s conflicts with %s", e.Sites[0], e.Sites[1])
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for AmbiguousDeclarationError.
func (e *AmbiguousDeclarationError) Is(target error) bool {
	return target == ErrAmbiguousDeclaration
}

// NewAmbiguousDeclarationError creates a new AmbiguousDeclarationError.
func NewAmbiguousDeclarationError(typeName, field string, a, b Location, message string) *AmbiguousDeclarationError {
	return &AmbiguousDeclarationError{
		Type:    typeName,
		Field:   field,
		Sites:   [2]Location{a, b},
		Message: message,
	}
}

// RealizationMismatchError is reported when a type fails to realize, or
// realizes incompatibly, a relationship declared by its site.
type RealizationMismatchError struct {
	Site    Location // Declaring site
	Type    string   // Realizing (or failing) type
	Pos     string
	Message string
}

// Error implements the error interface.
func (e *RealizationMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("augment: realization mismatch on type ")
	b.WriteString(e.Type)
	b.WriteString(" field ")
	b.WriteString(e.Site.Field)
	if e.Pos != "" {
		b.WriteString(" (")
		b.WriteString(e.Pos)
		b.WriteString(")")
	}
	b.WriteString(" declared by ")
	b.WriteString(e.Site.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for RealizationMismatchError.
func (e *RealizationMismatchError) Is(target error) bool {
	return target == ErrRealizationMismatch
}

// NewRealizationMismatchError creates a new RealizationMismatchError.
func NewRealizationMismatchError(site Location, typeName, pos, message string) *RealizationMismatchError {
	return &RealizationMismatchError{
		Site:    site,
		Type:    typeName,
		Pos:     pos,
		Message: message,
	}
}

// UnresolvedAbstractFieldWarning is a non-fatal diagnostic for an abstract
// declaration that no concrete type realizes.
type UnresolvedAbstractFieldWarning struct {
	Site Location
}

// Error implements the error interface.
func (w *UnresolvedAbstractFieldWarning) Error() string {
	return "augment: abstract field " + w.Site.String() + " is not realized by any concrete type"
}

// Is reports whether the target matches the sentinel error for UnresolvedAbstractFieldWarning.
func (w *UnresolvedAbstractFieldWarning) Is(target error) bool {
	return target == ErrUnresolvedAbstractField
}

// GenerationError represents a schema generation error.
type GenerationError struct {
	Phase   string // "registry", "bundle", "scaffold", "emit", etc.
	Name    string // Definition name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("augment: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Name != "" {
		b.WriteString(" (definition: ")
		b.WriteString(e.Name)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, name, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		Name:    name,
		Message: message,
		Cause:   cause,
	}
}

// AggregateError represents a collection of errors found in one pass.
type AggregateError struct {
	Errors []error
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "augment: %d errors:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the collected errors, so errors.Is and errors.As see each of them.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns an error for the given non-nil errors, or nil
// if there are none.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return &AggregateError{Errors: filtered}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsAmbiguousDeclarationError reports whether the error is an AmbiguousDeclarationError.
func IsAmbiguousDeclarationError(err error) bool {
	var ambErr *AmbiguousDeclarationError
	return errors.As(err, &ambErr)
}

// IsRealizationMismatchError reports whether the error is a RealizationMismatchError.
func IsRealizationMismatchError(err error) bool {
	var mmErr *RealizationMismatchError
	return errors.As(err, &mmErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
