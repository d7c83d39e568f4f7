package action

import (
	"context"
)

// Check is a command precondition. A non-nil error stops the call before the
// invoker is reached; its text becomes the failure message.
type Check func(args Args) error

// RequireArg returns a Check that fails with message when the argument at
// index is missing or null.
func RequireArg(index int, message string) Check {
	return func(args Args) error {
		if args.At(index).IsNull() {
			return &ValidationError{Message: message}
		}
		return nil
	}
}

// Command is an Action that validates its arguments and then delegates,
// unchanged, to a named invoker.
type Command struct {
	key     string
	invoker InvokerID
	checks  []Check
}

// NewCommand creates a Command routed by key and executed by invoker.
//
// Example:
//
//	cancel := action.NewCommand("snsLikeCancel", "wechat.SnsLikeCancel",
//	    action.RequireArg(0, "Illegal argument exception: no sns id was found!"),
//	)
func NewCommand(key string, invoker InvokerID, checks ...Check) *Command {
	return &Command{key: key, invoker: invoker, checks: checks}
}

// Key implements Action.
func (c *Command) Key() string { return c.key }

// Invoker returns the id of the invoker the command delegates to.
func (c *Command) Invoker() InvokerID { return c.invoker }

// Execute implements Action. A failed check yields a failure Result and the
// executor is not called. Otherwise the executor's outcome is returned as is.
func (c *Command) Execute(ctx context.Context, exec Executor, id string, args Args) (*Result, error) {
	for _, check := range c.checks {
		if err := check(args); err != nil {
			return Failure(id, err.Error()), nil
		}
	}
	return exec.Invoke(ctx, c.invoker, id, args)
}
