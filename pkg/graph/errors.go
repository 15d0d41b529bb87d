package graph

import "fmt"

// ErrorKind is the stable, machine-readable tag every core error carries.
// Callers pattern-match on the tag rather than on the message text.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "NotFound"
	KindNodeNotFound       ErrorKind = "NodeNotFound"
	KindPathNotFound       ErrorKind = "PathNotFound"
	KindInvalidID          ErrorKind = "InvalidId"
	KindInvalidLabel       ErrorKind = "InvalidLabel"
	KindInvalidProperty    ErrorKind = "InvalidProperty"
	KindUnsupportedPattern ErrorKind = "UnsupportedPattern"
)

// CoreError is the error type returned by every exported operation that can
// fail. Validation errors carry no state change; lookup errors are normal
// query outcomes; dispatch errors are surfaced with a human-readable hint.
type CoreError struct {
	Kind ErrorKind
	Msg  string
}

func (e *CoreError) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is lets errors.Is match CoreErrors purely by Kind, so callers can compare
// against a sentinel of the same Kind without caring about the message.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds a CoreError with the given kind and formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *CoreError {
	return &CoreError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel CoreErrors for errors.Is comparisons where no extra context is needed.
var (
	ErrNotFound           = &CoreError{Kind: KindNotFound}
	ErrNodeNotFound       = &CoreError{Kind: KindNodeNotFound}
	ErrPathNotFound       = &CoreError{Kind: KindPathNotFound}
	ErrUnsupportedPattern = &CoreError{Kind: KindUnsupportedPattern}
)
