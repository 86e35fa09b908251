package entity

import "fmt"

// ConfigError reports a declared layout element that cannot be compiled into
// a blueprint. It surfaces at compile time, not registration time: the
// registry accepts any descriptor, and the defect is only detectable when the
// layout is walked.
type ConfigError struct {
	Entity string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("entity %q: %s", e.Entity, e.Detail)
}
