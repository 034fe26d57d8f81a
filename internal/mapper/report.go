package mapper

import (
	"fmt"
	"strings"

	"RestoPos/pkg/logging"
)

// Default records a field that was missing or invalid in a payload and the
// value substituted for it.
type Default struct {
	Field  string
	Reason string
	Value  interface{}
}

func (d Default) String() string {
	return fmt.Sprintf("%s: %s, using %v", d.Field, d.Reason, d.Value)
}

// Report collects the defaults and skipped entries of one mapping call.
type Report struct {
	Entity   string
	Defaults []Default
	Skipped  []error
}

func (r *Report) add(field, reason string, value interface{}) {
	r.Defaults = append(r.Defaults, Default{Field: field, Reason: reason, Value: value})
}

func (r *Report) skip(err error) {
	r.Skipped = append(r.Skipped, err)
}

func (r *Report) Empty() bool {
	return len(r.Defaults) == 0 && len(r.Skipped) == 0
}

func (r *Report) String() string {
	var parts []string
	for _, d := range r.Defaults {
		parts = append(parts, d.String())
	}
	for _, err := range r.Skipped {
		parts = append(parts, "skipped: "+err.Error())
	}
	return fmt.Sprintf("%s: %s", r.Entity, strings.Join(parts, "; "))
}

// Log writes the report at debug level; defaults are never surfaced to users.
func (r *Report) Log() {
	if r == nil || r.Empty() {
		return
	}
	logger := logging.GetLogger()
	logger.Debugf("mapping defaults %s", r.String())
}

type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
