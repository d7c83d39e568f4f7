package action

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is matched by errors returned when two actions, or two
	// invokers, are registered under the same key.
	ErrDuplicateKey = errors.New("action: duplicate key")
	// ErrEmptyKey is returned when registering an action or invoker with no key.
	ErrEmptyKey = errors.New("action: empty key")
	// ErrSealed is returned by registration after Seal was called.
	ErrSealed = errors.New("action: registry is sealed")
	// ErrUnknownInvoker is returned when a command names an invoker that was
	// never registered.
	ErrUnknownInvoker = errors.New("action: unknown invoker")
	// ErrInvokerFault is matched by every InvokerFault.
	ErrInvokerFault = errors.New("action: invoker fault")
)

// DuplicateKeyError reports a registration conflict.
type DuplicateKeyError struct {
	Kind string // "action" or "invoker"
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("action: %s %q already registered", e.Kind, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// ValidationError reports a failed command precondition. Its message is
// what the caller sees in the failure Result.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InvokerFault wraps an error or panic raised below the command layer.
// The registry never lets a fault escape Dispatch; it is reported to hooks
// and turned into a failure Result.
type InvokerFault struct {
	Invoker InvokerID
	Err     error
}

func (e *InvokerFault) Error() string {
	if e.Invoker == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invoker %s: %v", e.Invoker, e.Err)
}

func (e *InvokerFault) Unwrap() error { return e.Err }

func (e *InvokerFault) Is(target error) bool { return target == ErrInvokerFault }

func unknownCommandMessage(key string) string {
	return fmt.Sprintf("unknown command: %q is not registered", key)
}
