package action

import (
	"encoding/json"
	"errors"
)

// ErrNoPayload is returned by Result.Decode when the result carries no payload.
var ErrNoPayload = errors.New("action: result has no payload")

// Result is the outcome envelope returned for every dispatched action.
//
// A Result is either a success carrying an optional payload, or a failure
// carrying a message. Build one with Success, Ack or Failure; the fields are
// not exported so a Result cannot change after construction.
//
// The accessors are safe on a nil *Result, which reads as "no reply": no id,
// not succeeded, no payload and no message.
type Result struct {
	id      string
	success bool
	payload any
	message string
}

// Success returns a successful Result for the correlation id with payload.
func Success(id string, payload any) *Result {
	return &Result{id: id, success: true, payload: payload}
}

// Ack returns a successful Result with no payload.
func Ack(id string) *Result {
	return &Result{id: id, success: true}
}

// Failure returns a failed Result for the correlation id with message.
func Failure(id, message string) *Result {
	return &Result{id: id, message: message}
}

// ID returns the correlation id echoed from the request.
func (r *Result) ID() string {
	if r == nil {
		return ""
	}
	return r.id
}

// Succeeded reports whether the action succeeded.
func (r *Result) Succeeded() bool { return r != nil && r.success }

// Payload returns the success payload. It is always nil for failures.
func (r *Result) Payload() any {
	if !r.Succeeded() {
		return nil
	}
	return r.payload
}

// Message returns the failure message. It is always empty for successes.
func (r *Result) Message() string {
	if r == nil || r.success {
		return ""
	}
	return r.message
}

// Decode unmarshals the payload into v. Payloads that arrived over the wire
// are held as raw JSON; in-process payloads are re-encoded first.
func (r *Result) Decode(v any) error {
	p := r.Payload()
	if p == nil {
		return ErrNoPayload
	}

	raw, ok := p.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(p); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, v)
}

type resultJSON struct {
	ID      string          `json:"id"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// MarshalJSON encodes the envelope. Only the side selected by the success
// flag is written.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{ID: r.id, Success: r.success}
	if r.success {
		if r.payload != nil {
			data, err := json.Marshal(r.payload)
			if err != nil {
				return nil, err
			}
			out.Data = data
		}
	} else {
		out.Message = r.message
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an envelope produced by MarshalJSON. The payload is
// kept as json.RawMessage; use Decode to read it into a typed value.
func (r *Result) UnmarshalJSON(b []byte) error {
	var in resultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*r = Result{id: in.ID, success: in.Success}
	if in.Success {
		if len(in.Data) > 0 && string(in.Data) != "null" {
			r.payload = in.Data
		}
	} else {
		r.message = in.Message
	}
	return nil
}
