package ports

// ModelCapabilityPort answers what a model family can do
type ModelCapabilityPort interface {
	// SupportsObjective reports whether the model accepts a custom tuning objective
	SupportsObjective(model string) bool
	// SupportsFixedParameters reports whether the model accepts fixed hyperparameters
	SupportsFixedParameters(model string) bool
	// SupportsProbabilities reports whether the model can emit class probabilities
	SupportsProbabilities(model string) bool
	// IsValidObjective reports whether name is a known metric
	IsValidObjective(name string) bool
	// Objectives lists every known metric name, sorted
	Objectives() []string
}
