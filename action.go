package action

import (
	"context"
)

// Action is a unit of dispatch bound to one routing key.
//
// Execute receives the Executor it should delegate to, the caller's
// correlation id and the call arguments. Returning a nil Result with a nil
// error is a valid outcome meaning there is nothing to report.
//
// Most actions are built with NewCommand. Implement Action directly when an
// operation needs to do more than validate and delegate:
//
//	type ping struct{}
//
//	func (ping) Key() string { return "ping" }
//
//	func (ping) Execute(ctx context.Context, _ action.Executor, id string, _ action.Args) (*action.Result, error) {
//	    return action.Success(id, "pong"), nil
//	}
type Action interface {
	Key() string
	Execute(ctx context.Context, exec Executor, id string, args Args) (*Result, error)
}

// ActionFunc creates an Action from a key and a function. Use for actions
// that don't need a struct:
//
//	r.MustRegister(action.ActionFunc("ping", func(ctx context.Context, _ action.Executor, id string, _ action.Args) (*action.Result, error) {
//	    return action.Success(id, "pong"), nil
//	}))
func ActionFunc(key string, fn func(ctx context.Context, exec Executor, id string, args Args) (*Result, error)) Action {
	return &actionFunc{key: key, fn: fn}
}

type actionFunc struct {
	key string
	fn  func(ctx context.Context, exec Executor, id string, args Args) (*Result, error)
}

func (a *actionFunc) Key() string { return a.key }

func (a *actionFunc) Execute(ctx context.Context, exec Executor, id string, args Args) (*Result, error) {
	return a.fn(ctx, exec, id, args)
}

// InvokerID names an invoker implementation. Commands refer to invokers by id
// so they never depend on how an invoker is built.
type InvokerID string

func (id InvokerID) String() string { return string(id) }

// Invoker performs the automation behind one or more commands. It receives
// the arguments exactly as the caller sent them.
//
// An Invoker must be safe for concurrent use if the registry serves
// concurrent callers.
type Invoker interface {
	Invoke(ctx context.Context, id string, args Args) (*Result, error)
}

// InvokerFunc is a function adapter for Invoker.
type InvokerFunc func(ctx context.Context, id string, args Args) (*Result, error)

// Invoke implements the Invoker interface.
func (f InvokerFunc) Invoke(ctx context.Context, id string, args Args) (*Result, error) {
	return f(ctx, id, args)
}

// InvokerFactory locates or builds the Invoker for a single call.
type InvokerFactory func() Invoker

// Singleton returns a factory that always yields inv.
func Singleton(inv Invoker) InvokerFactory {
	return func() Invoker { return inv }
}

// Fresh returns a factory that builds a new invoker for every call.
func Fresh(build func() Invoker) InvokerFactory {
	return InvokerFactory(build)
}

// Executor runs an invoker on behalf of a command. Registry implements it;
// tests can substitute their own.
type Executor interface {
	Invoke(ctx context.Context, invoker InvokerID, id string, args Args) (*Result, error)
}
