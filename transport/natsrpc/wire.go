package natsrpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/bjaus/action"
)

var (
	// ErrInvalidRequest is returned for request bodies that cannot be decoded.
	ErrInvalidRequest = errors.New("natsrpc: invalid request")
	// ErrMissingKey is returned for requests without a command key.
	ErrMissingKey = errors.New("natsrpc: request has no key")
)

// Request is the wire form of a command call:
//
//	{"id": "3f0c...", "key": "snsLikeCancel", "args": ["sns-42"]}
type Request struct {
	ID   string      `json:"id"`
	Key  string      `json:"key"`
	Args action.Args `json:"args,omitempty"`
}

// Encode returns the JSON form of req.
func (req Request) Encode() ([]byte, error) {
	return json.Marshal(req)
}

// DecodeRequest parses a request body. The correlation id is returned even
// when the rest of the body is unusable, so the failure can still be
// matched by the caller.
func DecodeRequest(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{}, ErrInvalidRequest
	}

	fields := gjson.GetManyBytes(data, "id", "key", "args")
	req := Request{ID: fields[0].String(), Key: fields[1].String()}

	if !gjson.ParseBytes(data).IsObject() {
		return req, ErrInvalidRequest
	}
	if req.Key == "" {
		return req, ErrMissingKey
	}

	if fields[2].Exists() {
		args, err := action.ParseArgs([]byte(fields[2].Raw))
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		req.Args = args
	}
	return req, nil
}

// EncodeResult returns the reply body for res. A nil result encodes as JSON
// null.
func EncodeResult(res *action.Result) ([]byte, error) {
	if res == nil {
		return []byte("null"), nil
	}
	return json.Marshal(res)
}

// DecodeResult parses a reply body. JSON null decodes to a nil Result.
func DecodeResult(data []byte) (*action.Result, error) {
	if gjson.ParseBytes(data).Type == gjson.Null && gjson.ValidBytes(data) {
		return nil, nil
	}

	var res action.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("natsrpc: decode result: %w", err)
	}
	return &res, nil
}
