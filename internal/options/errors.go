package options

import "fmt"

// ConfigError is a configuration-level failure: a missing root directory,
// an unreadable basecode path, an out-of-range option. It aborts the run
// before any comparison executes and is distinct from per-submission
// failures, which are accumulated and reported alongside the result.
type ConfigError struct {
	Path   string // offending path, if any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}
