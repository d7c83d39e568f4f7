package action

import (
	"context"
	"time"
)

// OnDispatchFunc is called after the action is resolved and before it runs.
// Use this to enrich the context with logging fields or trace spans.
// The returned context is used for the rest of the call.
type OnDispatchFunc func(ctx context.Context, key, id string) context.Context

// OnSuccessFunc is called when the action produced a successful Result or no
// Result at all.
type OnSuccessFunc func(ctx context.Context, key, id string, duration time.Duration)

// OnFailureFunc is called when a registered action ends with a failure
// Result, whether from validation or an invoker fault.
type OnFailureFunc func(ctx context.Context, key, id, message string, duration time.Duration)

// OnNoHandlerFunc is called when no action is registered for the key. It is
// the only hook that runs for an unknown key.
type OnNoHandlerFunc func(ctx context.Context, key, id string)

// OnInvokerFaultFunc is called when an invoker returns an error or panics.
// The fault has already been turned into a failure Result.
type OnInvokerFaultFunc func(ctx context.Context, key, id string, fault *InvokerFault)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch     []OnDispatchFunc
	onSuccess      []OnSuccessFunc
	onFailure      []OnFailureFunc
	onNoHandler    []OnNoHandlerFunc
	onInvokerFault []OnInvokerFaultFunc
}

// Option configures a Registry.
type Option func(*Registry)

// WithOnDispatch adds a hook called just before the action executes.
// Multiple hooks are called in order, with context chaining through each.
//
// Example:
//
//	action.WithOnDispatch(func(ctx context.Context, key, id string) context.Context {
//	    logger.InfoContext(ctx, "dispatching", "key", key)
//	    return ctx
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Registry) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after a successful call.
// Multiple hooks are called in order.
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(r *Registry) {
		r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after a failed call.
// Multiple hooks are called in order.
//
// Example:
//
//	action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
//	    metrics.Incr("action.failure", "key:"+key)
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(r *Registry) {
		r.hooks.onFailure = append(r.hooks.onFailure, fn)
	}
}

// WithOnNoHandler adds a hook called when the key is not registered.
// The caller still receives a failure Result.
func WithOnNoHandler(fn OnNoHandlerFunc) Option {
	return func(r *Registry) {
		r.hooks.onNoHandler = append(r.hooks.onNoHandler, fn)
	}
}

// WithOnInvokerFault adds a hook called when an invoker fails or panics.
func WithOnInvokerFault(fn OnInvokerFaultFunc) Option {
	return func(r *Registry) {
		r.hooks.onInvokerFault = append(r.hooks.onInvokerFault, fn)
	}
}

// WithOptions groups several options into one. Packages that provide a set
// of hooks return their hooks this way.
func WithOptions(opts ...Option) Option {
	return func(r *Registry) {
		for _, opt := range opts {
			opt(r)
		}
	}
}

func (h *hooks) callOnDispatch(ctx context.Context, key, id string) context.Context {
	for _, fn := range h.onDispatch {
		ctx = fn(ctx, key, id)
	}
	return ctx
}

func (h *hooks) callOnSuccess(ctx context.Context, key, id string, d time.Duration) {
	for _, fn := range h.onSuccess {
		fn(ctx, key, id, d)
	}
}

func (h *hooks) callOnFailure(ctx context.Context, key, id, message string, d time.Duration) {
	for _, fn := range h.onFailure {
		fn(ctx, key, id, message, d)
	}
}

func (h *hooks) callOnNoHandler(ctx context.Context, key, id string) {
	for _, fn := range h.onNoHandler {
		fn(ctx, key, id)
	}
}

func (h *hooks) callOnInvokerFault(ctx context.Context, key, id string, fault *InvokerFault) {
	for _, fn := range h.onInvokerFault {
		fn(ctx, key, id, fault)
	}
}
