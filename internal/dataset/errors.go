package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a loaded table has no rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// ConfigError reports a fatal configuration problem: a bad input path, an
// unsupported format, an absent required column or an unusable setting.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "configuration error"
	}
	msg := "configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Configf builds a ConfigError for field with a formatted reason.
func Configf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// RequireColumns returns a ConfigError naming the first column not in t.
func RequireColumns(t *Table, names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return Configf(n, "required column %q not found (available: %v)", n, t.Columns())
		}
	}
	return nil
}
