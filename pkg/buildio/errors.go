package buildio

import "fmt"

// IOAction identifies the direction of a failed I/O operation.
type IOAction int

const (
	// ActionReadFrom marks a failure while reading from a resource.
	ActionReadFrom IOAction = iota
	// ActionWriteTo marks a failure while writing to a resource.
	ActionWriteTo
)

// String returns a human-readable form suitable for error messages.
func (a IOAction) String() string {
	switch a {
	case ActionReadFrom:
		return "read from"
	case ActionWriteTo:
		return "write to"
	default:
		return "access"
	}
}

// ResourceKind identifies what kind of resource a failed operation targeted.
type ResourceKind int

const (
	// KindFile marks a failure on a regular file.
	KindFile ResourceKind = iota
	// KindDirectory marks a failure on a directory.
	KindDirectory
)

// String returns the string representation of the resource kind.
func (k ResourceKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	default:
		return "file"
	}
}

// IOError is the structured failure type every backend boundary converts
// into. It records what was being attempted, on what kind of resource, at
// which path, and the underlying cause when one is available.
type IOError struct {
	Action IOAction
	Kind   ResourceKind
	Path   string
	Err    error // underlying cause, may be nil
}

// Error returns a formatted error message.
func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s %s '%s': %v", e.Action, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s %s '%s'", e.Action, e.Kind, e.Path)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying cause's description, or "" when none was
// recorded.
func (e *IOError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// NewReadError builds an IOError for a failed read on the given resource.
func NewReadError(kind ResourceKind, path string, err error) *IOError {
	return &IOError{Action: ActionReadFrom, Kind: kind, Path: path, Err: err}
}

// NewWriteError builds an IOError for a failed write on the given resource.
func NewWriteError(kind ResourceKind, path string, err error) *IOError {
	return &IOError{Action: ActionWriteTo, Kind: kind, Path: path, Err: err}
}

// convertWrite translates a raw write failure on the resource at path into an
// IOError. A nil error passes through untouched.
func convertWrite(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewWriteError(KindFile, path, err)
}
