package chunker

import "fmt"

// ConfigError reports an invalid chunking configuration. It is returned at
// validation time and never retried; the caller must fix the input.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid chunking config: %s %s", e.Field, e.Reason)
}

// StrategyError reports an explicit strategy override outside the recognized
// set. The call fails with no partial result.
type StrategyError struct {
	Name string
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("unsupported chunking strategy %q", e.Name)
}
