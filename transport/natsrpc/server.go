// Package natsrpc serves a command registry over NATS request/reply and
// provides the matching client.
package natsrpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bjaus/action"
	"github.com/bjaus/action/logging"
)

// Default subject, queue group and drain bound.
const (
	DefaultSubject      = "actions.dispatch"
	DefaultQueue        = "actiond"
	DefaultDrainTimeout = 30 * time.Second
)

// ErrDrainTimeout is returned by Serve when pending requests were still
// being handled after the drain timeout.
var ErrDrainTimeout = errors.New("natsrpc: drain timed out")

// Dispatcher is the part of action.Registry the server needs.
type Dispatcher interface {
	DispatchArgs(ctx context.Context, key, id string, args action.Args) *action.Result
}

// Subscription is an active subscription. *nats.Subscription implements it.
type Subscription interface {
	// Drain stops new deliveries and removes the subscription once the
	// messages already delivered have been handled.
	Drain() error
	// IsValid reports whether the subscription is still active.
	IsValid() bool
}

// Subscriber creates queue subscriptions. Use Conn to adapt a *nats.Conn.
type Subscriber interface {
	QueueSubscribe(subject, queue string, cb nats.MsgHandler) (Subscription, error)
}

// Conn adapts a NATS connection to Subscriber.
func Conn(nc *nats.Conn) Subscriber {
	return natsConn{nc: nc}
}

type natsConn struct {
	nc *nats.Conn
}

func (c natsConn) QueueSubscribe(subject, queue string, cb nats.MsgHandler) (Subscription, error) {
	sub, err := c.nc.QueueSubscribe(subject, queue, cb)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Server answers command requests on a subject.
type Server struct {
	conn         Subscriber
	dispatcher   Dispatcher
	subject      string
	queue        string
	drainTimeout time.Duration
	logger       *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithSubject sets the subject requests arrive on.
func WithSubject(subject string) ServerOption {
	return func(s *Server) {
		s.subject = subject
	}
}

// WithQueue sets the queue group. Servers in the same group share the load.
func WithQueue(queue string) ServerOption {
	return func(s *Server) {
		s.queue = queue
	}
}

// WithDrainTimeout bounds how long Serve waits for pending requests on
// shutdown.
func WithDrainTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.drainTimeout = d
	}
}

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a Server dispatching to d.
func NewServer(conn Subscriber, d Dispatcher, opts ...ServerOption) *Server {
	s := &Server{
		conn:         conn,
		dispatcher:   d,
		subject:      DefaultSubject,
		queue:        DefaultQueue,
		drainTimeout: DefaultDrainTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve subscribes and answers requests until ctx is done. It then drains
// the subscription and returns once every request already delivered has
// been answered, or the drain timeout has passed.
//
// Requests are dispatched with a context that keeps ctx's values but not
// its cancellation, so requests handled during the drain still run.
func (s *Server) Serve(ctx context.Context) error {
	base := context.WithoutCancel(ctx)

	sub, err := s.conn.QueueSubscribe(s.subject, s.queue, func(msg *nats.Msg) {
		reply := s.HandleMsg(base, msg)
		if msg.Reply == "" {
			return
		}
		if err := msg.Respond(reply); err != nil {
			s.logger.ErrorContext(base, "failed to send reply", logging.Subject(msg.Reply), logging.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.subject, err)
	}

	s.logger.InfoContext(ctx, "serving actions", logging.Subject(s.subject), slog.String("queue", s.queue))

	<-ctx.Done()

	s.logger.InfoContext(base, "draining", logging.Subject(s.subject))
	if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("drain %s: %w", s.subject, err)
	}
	return s.waitDrained(sub)
}

func (s *Server) waitDrained(sub Subscription) error {
	deadline := time.NewTimer(s.drainTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for sub.IsValid() {
		select {
		case <-deadline.C:
			return fmt.Errorf("%w after %s on %s", ErrDrainTimeout, s.drainTimeout, s.subject)
		case <-tick.C:
		}
	}
	return nil
}

// HandleMsg answers one NATS message. Trace context carried in the message
// headers becomes the parent of the dispatch.
func (s *Server) HandleMsg(ctx context.Context, msg *nats.Msg) []byte {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(msg.Header))
	return s.Handle(ctx, msg.Data)
}

// Handle decodes one request body, dispatches it and returns the reply
// body. Undecodable requests are answered with a failure Result.
func (s *Server) Handle(ctx context.Context, data []byte) []byte {
	req, err := DecodeRequest(data)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected request", logging.CorrelationID(req.ID), logging.Error(err))
		return s.encode(ctx, action.Failure(req.ID, err.Error()))
	}

	return s.encode(ctx, s.dispatcher.DispatchArgs(ctx, req.Key, req.ID, req.Args))
}

func (s *Server) encode(ctx context.Context, res *action.Result) []byte {
	body, err := EncodeResult(res)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode result", logging.CorrelationID(res.ID()), logging.Error(err))
		body, _ = EncodeResult(action.Failure(res.ID(), "encode result: "+err.Error()))
	}
	return body
}
