package action

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Registry maps routing keys to actions and invoker ids to invoker
// factories, and dispatches calls between them.
//
// Usage:
//  1. Create a registry with New
//  2. Register invokers with RegisterInvoker
//  3. Register actions with Register
//  4. Optionally Seal the registry
//  5. Serve calls with Dispatch
//
// Registry is safe for concurrent use after configuration. Do not call
// Register or RegisterInvoker after calling Dispatch.
type Registry struct {
	actions  map[string]Action
	invokers map[InvokerID]InvokerFactory
	hooks    hooks
	sealed   bool
}

// New creates a Registry with the given options.
//
// Example:
//
//	r := action.New(
//	    action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
//	        log.Printf("%s (%s) failed: %s", key, id, msg)
//	    }),
//	)
func New(opts ...Option) *Registry {
	r := &Registry{
		actions:  make(map[string]Action),
		invokers: make(map[InvokerID]InvokerFactory),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an action under its Key. Registering a second action with
// the same key is a configuration error.
//
// Example:
//
//	r.Register(action.NewCommand("addFriend", "wechat.AddFriend"))
func (r *Registry) Register(a Action) error {
	if r.sealed {
		return ErrSealed
	}
	key := a.Key()
	if key == "" {
		return ErrEmptyKey
	}
	if _, ok := r.actions[key]; ok {
		return &DuplicateKeyError{Kind: "action", Key: key}
	}
	r.actions[key] = a
	return nil
}

// MustRegister is like Register but panics on error. Use it for static
// start-up wiring where a conflict means the process must not serve.
func (r *Registry) MustRegister(actions ...Action) {
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
}

// RegisterInvoker binds an invoker id to the factory that provides it.
//
// Example:
//
//	r.RegisterInvoker("wechat.AddFriend", action.Singleton(addFriend))
//	r.RegisterInvoker("shell.UnlockScreen", action.Fresh(newUnlocker))
func (r *Registry) RegisterInvoker(id InvokerID, f InvokerFactory) error {
	if r.sealed {
		return ErrSealed
	}
	if id == "" {
		return ErrEmptyKey
	}
	if f == nil {
		return fmt.Errorf("action: invoker %q has no factory", id)
	}
	if _, ok := r.invokers[id]; ok {
		return &DuplicateKeyError{Kind: "invoker", Key: string(id)}
	}
	r.invokers[id] = f
	return nil
}

// Seal ends configuration. Later registrations return ErrSealed.
func (r *Registry) Seal() { r.sealed = true }

// Lookup returns the action registered under key.
func (r *Registry) Lookup(key string) (Action, bool) {
	a, ok := r.actions[key]
	return a, ok
}

// Keys returns the registered routing keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.actions))
	for k := range r.actions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Dispatch runs the action registered under key with the correlation id and
// arguments, and returns its Result.
//
// Dispatch never panics and never returns an error. Unknown keys and
// invoker faults become failure Results. A nil Result is returned only when
// the action itself reported nothing.
//
// Example:
//
//	res := r.Dispatch(ctx, "snsLikeCancel", "r1", action.String("sns-42"))
//	if res != nil && !res.Succeeded() {
//	    log.Print(res.Message())
//	}
func (r *Registry) Dispatch(ctx context.Context, key, id string, args ...Arg) *Result {
	return r.DispatchArgs(ctx, key, id, args)
}

// DispatchArgs is Dispatch for an argument list that is already built.
func (r *Registry) DispatchArgs(ctx context.Context, key, id string, args Args) *Result {
	if ctx == nil {
		ctx = context.Background()
	}

	a, found := r.actions[key]
	if !found {
		return r.handleNoHandler(ctx, key, id)
	}

	ctx = r.hooks.callOnDispatch(ctx, key, id)

	start := time.Now()
	res, err := r.execute(ctx, a, id, args)
	duration := time.Since(start)

	if err != nil {
		fault := asFault(err)
		r.hooks.callOnInvokerFault(ctx, key, id, fault)
		res = Failure(id, fault.Error())
	}

	if res != nil && !res.Succeeded() {
		r.hooks.callOnFailure(ctx, key, id, res.Message(), duration)
	} else {
		r.hooks.callOnSuccess(ctx, key, id, duration)
	}

	return res
}

// Invoke implements Executor. It builds the invoker through its factory and
// forwards the call unchanged. Errors and panics from the invoker are
// returned as *InvokerFault.
func (r *Registry) Invoke(ctx context.Context, invoker InvokerID, id string, args Args) (res *Result, err error) {
	factory, ok := r.invokers[invoker]
	if !ok {
		return nil, &InvokerFault{Invoker: invoker, Err: ErrUnknownInvoker}
	}

	defer func() {
		if p := recover(); p != nil {
			res, err = nil, &InvokerFault{Invoker: invoker, Err: panicError(p)}
		}
	}()

	inv := factory()
	if inv == nil {
		return nil, &InvokerFault{Invoker: invoker, Err: errors.New("factory returned no invoker")}
	}

	res, err = inv.Invoke(ctx, id, args)
	if err != nil {
		var fault *InvokerFault
		if !errors.As(err, &fault) {
			err = &InvokerFault{Invoker: invoker, Err: err}
		}
		return nil, err
	}
	return res, nil
}

// execute runs the action, turning a panic above the invoker layer into an
// error.
func (r *Registry) execute(ctx context.Context, a Action, id string, args Args) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicError(p)
		}
	}()
	return a.Execute(ctx, r, id, args)
}

// handleNoHandler handles the case when no action is registered.
func (r *Registry) handleNoHandler(ctx context.Context, key, id string) *Result {
	r.hooks.callOnNoHandler(ctx, key, id)
	return Failure(id, unknownCommandMessage(key))
}

func asFault(err error) *InvokerFault {
	var fault *InvokerFault
	if errors.As(err, &fault) {
		return fault
	}
	return &InvokerFault{Err: err}
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", p)
}
