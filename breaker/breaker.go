// Package breaker guards invokers with a circuit breaker so a failing
// automation backend is short-circuited instead of called on every request.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/bjaus/action"
)

// Config controls when the circuit opens.
type Config struct {
	// MaxFailures is the number of consecutive invoker errors that opens the
	// circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial call.
	OpenTimeout time.Duration
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// Settings builds gobreaker settings for the named invoker.
func (c Config) Settings(name string) gobreaker.Settings {
	maxFailures := c.MaxFailures
	if maxFailures == 0 {
		maxFailures = DefaultConfig().MaxFailures
	}

	return gobreaker.Settings{
		Name:        name,
		Timeout:     c.OpenTimeout,
		Interval:    0,
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
}

// IsOpen reports whether err was caused by an open circuit.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Wrap returns a factory whose invokers share one circuit breaker named
// after id. Only invoker errors count as failures; a failure Result is a
// normal outcome and does not trip the circuit.
func Wrap(id action.InvokerID, f action.InvokerFactory, cfg Config) action.InvokerFactory {
	cb := gobreaker.NewCircuitBreaker(cfg.Settings(string(id)))

	return func() action.Invoker {
		return &guarded{cb: cb, factory: f}
	}
}

// Register wraps f with Wrap and registers it under id.
func Register(r *action.Registry, id action.InvokerID, f action.InvokerFactory, cfg Config) error {
	return r.RegisterInvoker(id, Wrap(id, f, cfg))
}

type guarded struct {
	cb      *gobreaker.CircuitBreaker
	factory action.InvokerFactory
}

func (g *guarded) Invoke(ctx context.Context, id string, args action.Args) (*action.Result, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		inv := g.factory()
		if inv == nil {
			return nil, errors.New("factory returned no invoker")
		}
		return inv.Invoke(ctx, id, args)
	})
	if err != nil {
		return nil, err
	}

	res, _ := out.(*action.Result)
	return res, nil
}
