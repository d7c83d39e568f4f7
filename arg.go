package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrInvalidArgs is returned by ParseArgs when the input is not a JSON array.
var ErrInvalidArgs = errors.New("action: args must be a JSON array")

// Kind identifies which variant an Arg holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindJSON:
		return "json"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Arg is a single action argument. The zero value is Null.
type Arg struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	raw  json.RawMessage
}

// Null returns the absent argument.
func Null() Arg { return Arg{} }

// String returns a string argument.
func String(s string) Arg { return Arg{kind: KindString, s: s} }

// Int returns an integer argument.
func Int(i int64) Arg { return Arg{kind: KindInt, i: i} }

// Float returns a floating point argument.
func Float(f float64) Arg { return Arg{kind: KindFloat, f: f} }

// Bool returns a boolean argument.
func Bool(b bool) Arg { return Arg{kind: KindBool, b: b} }

// RawJSON returns an argument holding an arbitrary JSON document, for objects
// and arrays that have no scalar form.
func RawJSON(raw json.RawMessage) Arg {
	if len(raw) == 0 {
		return Null()
	}
	return Arg{kind: KindJSON, raw: raw}
}

// ArgOf adapts a loose Go value. Unsigned values above math.MaxInt64 become
// floats, as they do when decoded from the wire. Values with no scalar form
// are encoded as JSON; values that cannot be encoded become Null.
func ArgOf(v any) Arg {
	switch x := v.(type) {
	case nil:
		return Null()
	case Arg:
		return x
	case string:
		return String(x)
	case *string:
		if x == nil {
			return Null()
		}
		return String(*x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return uintArg(uint64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return uintArg(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case json.RawMessage:
		return RawJSON(x)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return Null()
	}
	return RawJSON(raw)
}

func uintArg(x uint64) Arg {
	if x > math.MaxInt64 {
		return Float(float64(x))
	}
	return Int(int64(x))
}

// Kind returns the variant held by a.
func (a Arg) Kind() Kind { return a.kind }

// IsNull reports whether a is absent.
func (a Arg) IsNull() bool { return a.kind == KindNull }

// Str returns the string value. Only string arguments report ok.
func (a Arg) Str() (string, bool) {
	return a.s, a.kind == KindString
}

// Int64 returns the integer value. Only int arguments report ok.
func (a Arg) Int64() (int64, bool) {
	return a.i, a.kind == KindInt
}

// Float64 returns the numeric value of int and float arguments.
func (a Arg) Float64() (float64, bool) {
	switch a.kind {
	case KindFloat:
		return a.f, true
	case KindInt:
		return float64(a.i), true
	default:
		return 0, false
	}
}

// Bool returns the boolean value. Only bool arguments report ok.
func (a Arg) Bool() (bool, bool) {
	return a.b, a.kind == KindBool
}

// Decode unmarshals the argument into v.
func (a Arg) Decode(v any) error {
	raw, err := a.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (a Arg) String() string {
	switch a.kind {
	case KindString:
		return a.s
	case KindInt:
		return strconv.FormatInt(a.i, 10)
	case KindFloat:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(a.b)
	case KindJSON:
		return string(a.raw)
	default:
		return "null"
	}
}

// MarshalJSON encodes the argument as its natural JSON value.
func (a Arg) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindString:
		return json.Marshal(a.s)
	case KindInt:
		return json.Marshal(a.i)
	case KindFloat:
		return json.Marshal(a.f)
	case KindBool:
		return json.Marshal(a.b)
	case KindJSON:
		return a.raw, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value into the matching variant.
func (a *Arg) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("action: invalid argument %q", b)
	}
	*a = argFromResult(gjson.ParseBytes(b))
	return nil
}

func argFromResult(r gjson.Result) Arg {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.String:
		return String(r.Str)
	case gjson.True, gjson.False:
		return Bool(r.Bool())
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return Int(i)
		}
		return Float(r.Num)
	default:
		return RawJSON(json.RawMessage(r.Raw))
	}
}

// Args is the ordered argument list of an action call.
type Args []Arg

// ArgsOf adapts loose Go values with ArgOf.
func ArgsOf(vs ...any) Args {
	args := make(Args, len(vs))
	for i, v := range vs {
		args[i] = ArgOf(v)
	}
	return args
}

// ParseArgs decodes a JSON array into Args. An empty input or a JSON null
// yields no arguments.
func ParseArgs(raw []byte) (Args, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidArgs
	}

	r := gjson.ParseBytes(raw)
	if r.Type == gjson.Null {
		return nil, nil
	}
	if !r.IsArray() {
		return nil, ErrInvalidArgs
	}

	var args Args
	r.ForEach(func(_, v gjson.Result) bool {
		args = append(args, argFromResult(v))
		return true
	})
	return args, nil
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// At returns the argument at i, or Null when i is out of range.
func (a Args) At(i int) Arg {
	if i < 0 || i >= len(a) {
		return Null()
	}
	return a[i]
}
