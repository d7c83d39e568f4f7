package action

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ArgSuite struct {
	suite.Suite
}

func TestArgSuite(t *testing.T) {
	suite.Run(t, new(ArgSuite))
}

func (s *ArgSuite) TestZeroValueIsNull() {
	var a Arg
	s.Assert().True(a.IsNull())
	s.Assert().Equal(KindNull, a.Kind())
}

func (s *ArgSuite) TestTypedGetters() {
	str, ok := String("x").Str()
	s.Assert().True(ok)
	s.Assert().Equal("x", str)

	_, ok = Int(1).Str()
	s.Assert().False(ok)

	i, ok := Int(42).Int64()
	s.Assert().True(ok)
	s.Assert().EqualValues(42, i)

	f, ok := Int(2).Float64()
	s.Assert().True(ok)
	s.Assert().InDelta(2.0, f, 0)

	b, ok := Bool(true).Bool()
	s.Assert().True(ok)
	s.Assert().True(b)
}

func (s *ArgSuite) TestArgOf() {
	name := "wxid"
	var nilStr *string

	s.Assert().Equal(KindNull, ArgOf(nil).Kind())
	s.Assert().Equal(KindString, ArgOf("a").Kind())
	s.Assert().Equal(KindString, ArgOf(&name).Kind())
	s.Assert().Equal(KindNull, ArgOf(nilStr).Kind())
	s.Assert().Equal(KindInt, ArgOf(7).Kind())
	s.Assert().Equal(KindFloat, ArgOf(1.5).Kind())
	s.Assert().Equal(KindBool, ArgOf(false).Kind())
	s.Assert().Equal(KindString, ArgOf(String("y")).Kind())

	obj := ArgOf(map[string]int{"n": 1})
	s.Assert().Equal(KindJSON, obj.Kind())
	s.Assert().JSONEq(`{"n":1}`, obj.String())

	s.Assert().Equal(KindNull, ArgOf(make(chan int)).Kind())
}

func (s *ArgSuite) TestArgOfIntegerWidths() {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int8", int8(-8), -8},
		{"int16", int16(-1600), -1600},
		{"uint", uint(7), 7},
		{"uint8", uint8(255), 255},
		{"uint16", uint16(65535), 65535},
		{"uint64", uint64(math.MaxInt64), math.MaxInt64},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			a := ArgOf(tt.in)

			s.Require().Equal(KindInt, a.Kind())
			n, ok := a.Int64()
			s.Assert().True(ok)
			s.Assert().Equal(tt.want, n)
		})
	}
}

func (s *ArgSuite) TestArgOfLargeUnsignedIsFloat() {
	a := ArgOf(uint64(math.MaxUint64))

	s.Require().Equal(KindFloat, a.Kind())
	f, ok := a.Float64()
	s.Assert().True(ok)
	s.Assert().Equal(float64(math.MaxUint64), f)
}

func (s *ArgSuite) TestAtOutOfRangeIsNull() {
	args := ArgsOf("a")

	s.Assert().False(args.At(0).IsNull())
	s.Assert().True(args.At(1).IsNull())
	s.Assert().True(args.At(-1).IsNull())
	s.Assert().True(Args(nil).At(0).IsNull())
}

func (s *ArgSuite) TestParseArgs() {
	args, err := ParseArgs([]byte(`["sns-42", 3, 1.5, true, null, {"k":"v"}, [1,2]]`))
	s.Require().NoError(err)
	s.Require().Equal(7, args.Len())

	kinds := []Kind{KindString, KindInt, KindFloat, KindBool, KindNull, KindJSON, KindJSON}
	for i, k := range kinds {
		s.Assert().Equal(k, args.At(i).Kind(), "arg %d", i)
	}

	var obj map[string]string
	s.Require().NoError(args.At(5).Decode(&obj))
	s.Assert().Equal("v", obj["k"])
}

func (s *ArgSuite) TestParseArgsEmpty() {
	for _, raw := range []string{"", "null", "[]"} {
		args, err := ParseArgs([]byte(raw))
		s.Require().NoError(err, raw)
		s.Assert().Zero(args.Len(), raw)
	}
}

func (s *ArgSuite) TestParseArgsRejectsNonArray() {
	for _, raw := range []string{`{"a":1}`, `"x"`, `[1,`} {
		_, err := ParseArgs([]byte(raw))
		s.Assert().ErrorIs(err, ErrInvalidArgs, raw)
	}
}

func (s *ArgSuite) TestJSONRoundTrip() {
	in := ArgsOf("a", 1, 2.5, true, nil)

	raw, err := json.Marshal(in)
	s.Require().NoError(err)
	s.Assert().JSONEq(`["a",1,2.5,true,null]`, string(raw))

	var out Args
	s.Require().NoError(json.Unmarshal(raw, &out))
	s.Assert().Equal(in, out)
}

func (s *ArgSuite) TestKindString() {
	s.Assert().Equal("string", KindString.String())
	s.Assert().Equal("kind(99)", Kind(99).String())
}
