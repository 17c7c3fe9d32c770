package gen

var (
	// FeatureMutations generates the root Mutation type with create, update
	// and delete fields and their response payloads.
	FeatureMutations = Feature{
		Name:        "mutations",
		Stage:       Stable,
		Default:     true,
		Description: "Root create/update/delete mutations and their response payloads",
	}

	// FeatureAggregations generates root aggregate query fields and the
	// per-type <Type>AggregateSelection objects.
	FeatureAggregations = Feature{
		Name:        "aggregations",
		Stage:       Stable,
		Default:     true,
		Description: "Root aggregate queries and per-type aggregate selections",
	}

	// FeatureImplementations generates the <Interface>Implementation enum and
	// the typenameIn filter on interface where inputs.
	FeatureImplementations = Feature{
		Name:        "implementations",
		Stage:       Beta,
		Default:     true,
		Description: "Implementation enums and typename filters for interfaces",
	}

	// FeatureDescriptions carries model comments into the emitted schema as
	// descriptions.
	FeatureDescriptions = Feature{
		Name:        "descriptions",
		Stage:       Alpha,
		Default:     false,
		Description: "Copy model comments into schema descriptions",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureMutations,
		FeatureAggregations,
		FeatureImplementations,
		FeatureDescriptions,
	}
)

// FeatureStage describes the stage of the feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete but their output may still change.
	Alpha

	// Beta features are documented and their output is not expected to change.
	Beta

	// Stable features are Beta features that have been in use for a while.
	Stable
)

// String returns the lower-case name of the stage.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the schema augmentation.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
