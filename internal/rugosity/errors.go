package rugosity

import "fmt"

// ConfigError reports an invalid analysis configuration: a bad window
// size, a grid too small for the window, or a bad tile shape. It is
// always returned before any grid traversal begins, so a caller that
// sees one knows no partial output was produced.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "rugosity: " + e.Reason }

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
