package metrics

const (
	// DefaultNamespace prefixes all metrics unless a collector is given another one
	DefaultNamespace = "brazier"
	// subsystem for dispatch metrics
	subsystem = "mediator"
)
