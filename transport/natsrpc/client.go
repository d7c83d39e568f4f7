package natsrpc

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bjaus/action"
)

// Requester sends a request and waits for the reply. *nats.Conn implements it.
type Requester interface {
	RequestMsgWithContext(ctx context.Context, msg *nats.Msg) (*nats.Msg, error)
}

// Client sends commands to a Server.
type Client struct {
	conn    Requester
	subject string
	timeout time.Duration
}

// DefaultTimeout bounds a request when the context has no deadline.
const DefaultTimeout = 10 * time.Second

// NewClient creates a Client for subject. An empty subject means
// DefaultSubject; a zero timeout means DefaultTimeout.
func NewClient(conn Requester, subject string, timeout time.Duration) *Client {
	if subject == "" {
		subject = DefaultSubject
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{conn: conn, subject: subject, timeout: timeout}
}

// Send calls key with a fresh correlation id.
//
// Example:
//
//	res, err := client.Send(ctx, "getLoginUserInfo")
func (c *Client) Send(ctx context.Context, key string, args ...action.Arg) (*action.Result, error) {
	return c.SendID(ctx, action.NewID(), key, args...)
}

// SendID calls key with the given correlation id. A nil Result with a nil
// error means the command reported nothing. Transport errors are returned
// as errors; command failures arrive as failure Results.
//
// The trace context in ctx travels in the message headers.
func (c *Client) SendID(ctx context.Context, id, key string, args ...action.Arg) (*action.Result, error) {
	body, err := Request{ID: id, Key: key, Args: args}.Encode()
	if err != nil {
		return nil, fmt.Errorf("natsrpc: encode request: %w", err)
	}

	msg := nats.NewMsg(c.subject)
	msg.Data = body
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reply, err := c.conn.RequestMsgWithContext(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("natsrpc: request %s: %w", key, err)
	}
	return DecodeResult(reply.Data)
}
