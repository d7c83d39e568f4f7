// Package action provides a keyed command dispatcher for automation requests.
//
// A caller sends a routing key, a correlation id and an ordered list of
// arguments. The Registry finds the Action registered under the key, runs it,
// and hands back a Result that echoes the correlation id. Actions that need
// real work done delegate to an Invoker through the Executor they are given,
// so commands stay small: validate, then forward.
//
// # Quick Start
//
// Register the invokers that do the work, then the commands that use them:
//
//	r := action.New()
//
//	r.RegisterInvoker("wechat.SnsLikeCancel", action.Singleton(likeService))
//
//	r.MustRegister(
//	    action.NewCommand("snsLikeCancel", "wechat.SnsLikeCancel",
//	        action.RequireArg(0, "Illegal argument exception: no sns id was found!"),
//	    ),
//	)
//	r.Seal()
//
//	res := r.Dispatch(ctx, "snsLikeCancel", action.NewID(), action.String("13920491044"))
//	if res != nil && !res.Succeeded() {
//	    log.Print(res.Message())
//	}
//
// # Results
//
// A Result is either a success carrying an optional payload or a failure
// carrying a message. Its JSON form is stable:
//
//	{"id": "r1", "success": true, "data": {...}}
//	{"id": "r1", "success": false, "message": "..."}
//
// Dispatch returns nil when an action has nothing to report. Callers must
// treat nil as "no reply", not as success or failure. The accessors are safe
// on nil: Succeeded reports false and Message is empty.
//
// # Arguments
//
// Arguments are typed. Arg holds exactly one of null, string, int, float,
// bool or a raw JSON document. Out-of-range positions read as Null, so a
// missing argument and an explicit null look the same to checks:
//
//	args, err := action.ParseArgs([]byte(`["wxid_abc", null, {"scene": 3}]`))
//	args.At(0).Str()    // "wxid_abc", true
//	args.At(1).IsNull() // true
//	args.At(7).IsNull() // true
//
// # Commands
//
// Command is the standard Action. It runs its checks in order and stops at
// the first failure, returning a failure Result with the check's message.
// Only when every check passes is the invoker called, and its Result is
// returned unchanged.
//
// # Invokers
//
// Invokers are registered by InvokerID with a factory. Singleton shares one
// instance across calls; Fresh builds a new one per call. Any error returned
// by an invoker, and any panic raised by one, becomes an InvokerFault. The
// Registry reports the fault to the OnInvokerFault hooks and answers with a
// failure Result carrying the fault message.
//
// # Unknown Keys
//
// Dispatching an unregistered key returns a failure Result naming the key.
// Only the OnNoHandler hooks run.
//
// # Hooks
//
// Hooks provide observability without coupling to specific logging or
// metrics systems:
//
//	r := action.New(
//	    action.WithOnDispatch(func(ctx context.Context, key, id string) context.Context {
//	        return ctx
//	    }),
//	    action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
//	        logger.InfoContext(ctx, "action failed", "key", key, "message", msg)
//	    }),
//	)
//
// Available hooks:
//   - WithOnDispatch: Called just before the action executes, enriches context
//   - WithOnSuccess: Called after a success Result or a nil Result
//   - WithOnFailure: Called after a failure Result
//   - WithOnNoHandler: Called when no action is registered
//   - WithOnInvokerFault: Called when an invoker errors or panics
//
// Multiple hooks of the same type are called in order. The logging, metrics
// and tracing packages each return a ready-made set.
//
// # Thread Safety
//
// Registry is safe for concurrent use after configuration is complete. Call
// Seal once registration is done; later Register calls fail with ErrSealed.
package action
