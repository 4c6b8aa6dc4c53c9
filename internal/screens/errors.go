package screens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/invoicedesk/validation"
)

// ValidationError is returned when a draft fails validation. No collaborator
// was called and the dialog is still open.
type ValidationError struct {
	Entity     string
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(fields, ", "))
}

// OperationError is returned when a collaborator call fails.
type OperationError struct {
	Op     string
	Entity string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
