// Package gen holds the type graph of an augment compile.
//
// The compile pipeline follows this flow:
//
//	load.Schema (SDL, YAML or JSON front end)
//	        ↓
//	   Graph (validated, immutable type graph)
//	        ↓
//	   resolve.Result (relationship sites)
//	        ↓
//	   synth (artifact bundles and scaffolding)
//	        ↓
//	   emit.Document (sorted GraphQL SDL)
//
// # Key Types
//
//   - Graph: Holds all Type definitions with validation
//   - Type: A node, interface or attribute record with its fields
//   - Field: A scalar or relationship field with cardinality and nullability
//   - Relationship: An abstract declaration or a physical realization
//   - Config: Global configuration, options and feature flags
//
// # Errors
//
// Validation problems are reported as *SchemaError values collected into an
// *AggregateError. Relationship resolution reports *AmbiguousDeclarationError
// and *RealizationMismatchError, and non-fatal *UnresolvedAbstractFieldWarning
// diagnostics. Every typed error matches its sentinel with errors.Is.
package gen
