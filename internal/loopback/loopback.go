// Package loopback provides stand-in invokers for every command. They echo
// their input back, which lets actiond run end to end without a device.
package loopback

import (
	"context"
	"fmt"

	"github.com/bjaus/action"
	"github.com/bjaus/action/breaker"
	"github.com/bjaus/action/commands"
)

// Echo is the payload of a loopback reply.
type Echo struct {
	Invoker string      `json:"invoker"`
	Args    action.Args `json:"args"`
}

// Invoker answers every call with an Echo. Calls without arguments are
// acknowledged with no payload.
type Invoker struct {
	ID action.InvokerID
}

func (inv Invoker) Invoke(ctx context.Context, id string, args action.Args) (*action.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args.Len() == 0 {
		return action.Ack(id), nil
	}
	return action.Success(id, Echo{Invoker: inv.ID.String(), Args: args}), nil
}

// Register installs a loopback invoker for every command's invoker id. A
// non-nil cfg puts each one behind its own circuit breaker.
func Register(r *action.Registry, cfg *breaker.Config) error {
	for _, id := range commands.Invokers() {
		f := action.Singleton(Invoker{ID: id})

		var err error
		if cfg != nil {
			err = breaker.Register(r, id, f, *cfg)
		} else {
			err = r.RegisterInvoker(id, f)
		}
		if err != nil {
			return fmt.Errorf("loopback %s: %w", id, err)
		}
	}
	return nil
}
