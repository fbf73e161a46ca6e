package webstack

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid or missing required input.
// It is raised before any resource graph is emitted and is never retried.
type ConfigurationError struct {
	// Field is the offending input key (e.g. "maxAzs", "imports.hostedZoneId").
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Message
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// NewConfigurationError creates a ConfigurationError for field.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MissingValuesError is a ConfigurationError for one or more absent
// required imported values.
func MissingValuesError(keys []string) *ConfigurationError {
	return &ConfigurationError{
		Field:   strings.Join(keys, ", "),
		Message: "required value is missing",
	}
}

// TopologyCollision reports two claims on the same CIDR space, listener
// priority or static host port.
type TopologyCollision struct {
	// Kind is "cidr", "priority" or "hostPort".
	Kind string
	// Value is the offending block or priority.
	Value string
	// Owner is the stack making the new claim.
	Owner string
	// Holder is the stack (or reservation) already holding the value.
	Holder string
	// Existing is the value held by Holder when it differs from Value
	// (e.g. an enclosing block).
	Existing string
}

func (e *TopologyCollision) Error() string {
	msg := fmt.Sprintf("topology collision: %s %s claimed by %s is already held by %s", e.Kind, e.Value, e.Owner, e.Holder)
	if e.Existing != "" && e.Existing != e.Value {
		msg += " (" + e.Existing + ")"
	}
	return msg
}

// DependencyUnavailable reports an imported reference that cannot be
// resolved against the account.
type DependencyUnavailable struct {
	// Reference describes the import (e.g. "export core-vpc-id").
	Reference string
	Err       error
}

func (e *DependencyUnavailable) Error() string {
	if e.Err == nil {
		return "dependency unavailable: " + e.Reference
	}
	return fmt.Sprintf("dependency unavailable: %s: %v", e.Reference, e.Err)
}

func (e *DependencyUnavailable) Unwrap() error {
	return e.Err
}

// ConvergenceFailure is returned when the convergence engine fails to
// create or update a resource. The composer does not interpret it.
type ConvergenceFailure struct {
	Stack string
	// LogicalID and Type identify the failed resource, when known.
	LogicalID string
	Type      string
	Status    string
	Reason    string
	Err       error
}

func (e *ConvergenceFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "convergence failed for stack %s", e.Stack)
	if e.LogicalID != "" {
		fmt.Fprintf(&b, ": resource %s (%s) %s", e.LogicalID, e.Type, e.Status)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConvergenceFailure) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsCollision reports whether err is a TopologyCollision.
func IsCollision(err error) bool {
	var target *TopologyCollision
	return errors.As(err, &target)
}

// IsDependencyUnavailable reports whether err is a DependencyUnavailable.
func IsDependencyUnavailable(err error) bool {
	var target *DependencyUnavailable
	return errors.As(err, &target)
}

// IsConvergence reports whether err is a ConvergenceFailure.
func IsConvergence(err error) bool {
	var target *ConvergenceFailure
	return errors.As(err, &target)
}
