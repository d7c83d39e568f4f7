// Package message defines the chat message record that some actions take
// as an argument or return as a payload.
package message

import (
	"encoding/json"
	"strconv"
	"time"
)

// Type is the platform's numeric message type code.
type Type int

// Known message type codes. Any other code is treated as Unknown.
const (
	Unknown  Type = 0
	Text     Type = 1
	Image    Type = 3
	Voice    Type = 34
	Card     Type = 42
	Video    Type = 43
	Emoji    Type = 47
	Location Type = 48
	Link     Type = 49
	System   Type = 10000
)

var typeNames = map[Type]string{
	Unknown:  "unknown",
	Text:     "text",
	Image:    "image",
	Voice:    "voice",
	Card:     "card",
	Video:    "video",
	Emoji:    "emoji",
	Location: "location",
	Link:     "link",
	System:   "system",
}

// Valid reports whether t is a recognized code.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Normalize returns t if it is recognized and Unknown otherwise.
func Normalize(t Type) Type {
	if t.Valid() {
		return t
	}
	return Unknown
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// now is swapped in tests.
var now = time.Now

// Message describes one chat message. It is a value: the With methods
// return a modified copy and leave the receiver untouched.
type Message struct {
	typ        Type
	from       *string
	target     *string
	createTime time.Time
}

// New returns a Message of type t created now. Unrecognized codes become
// Unknown.
func New(t Type) Message {
	return Message{typ: Normalize(t), createTime: now()}
}

// Type returns the message type.
func (m Message) Type() Type { return m.typ }

// From returns the sender id, if set.
func (m Message) From() (string, bool) { return deref(m.from) }

// Target returns the recipient or conversation id, if set.
func (m Message) Target() (string, bool) { return deref(m.target) }

// CreateTime returns when the message was created.
func (m Message) CreateTime() time.Time { return m.createTime }

// WithType returns a copy of m with type t.
func (m Message) WithType(t Type) Message {
	m.typ = Normalize(t)
	return m
}

// WithFrom returns a copy of m sent by from.
func (m Message) WithFrom(from string) Message {
	m.from = &from
	return m
}

// WithoutFrom returns a copy of m with no sender.
func (m Message) WithoutFrom() Message {
	m.from = nil
	return m
}

// WithTarget returns a copy of m addressed to target.
func (m Message) WithTarget(target string) Message {
	m.target = &target
	return m
}

// WithoutTarget returns a copy of m with no target.
func (m Message) WithoutTarget() Message {
	m.target = nil
	return m
}

// WithCreateTime returns a copy of m created at t.
func (m Message) WithCreateTime(t time.Time) Message {
	m.createTime = t
	return m
}

type messageJSON struct {
	Type       Type    `json:"type"`
	From       *string `json:"from,omitempty"`
	Target     *string `json:"target,omitempty"`
	CreateTime int64   `json:"createTime"`
}

// MarshalJSON encodes the message with its create time in Unix milliseconds.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Type:       m.typ,
		From:       m.from,
		Target:     m.target,
		CreateTime: m.createTime.UnixMilli(),
	})
}

// UnmarshalJSON decodes a message written by MarshalJSON.
func (m *Message) UnmarshalJSON(b []byte) error {
	var in messageJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*m = Message{
		typ:        Normalize(in.Type),
		from:       in.From,
		target:     in.Target,
		createTime: time.UnixMilli(in.CreateTime),
	}
	return nil
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
