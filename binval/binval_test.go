package binval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		In  string
		Out string
	}{
		{"", "0"},
		{"0", "0"},
		{"000", "0"},
		{"1", "1"},
		{"0010", "10"},
		{"1010", "1010"},
		{"0001111", "1111"},
		{"12", "0"},
		{"abc", "0"},
		{" 101", "0"},
		{"101 ", "0"},
		{"-1", "0"},
		{"1.1", "0"},
	}
	for _, tc := range tcs {
		t.Run(tc.In, func(t *testing.T) {
			require.Equal(t, tc.Out, Parse(tc.In).String())
		})
	}
}

func TestParseStrict(t *testing.T) {
	t.Parallel()
	v, err := ParseStrict("00101")
	require.NoError(t, err)
	require.Equal(t, "101", v.String())

	_, err = ParseStrict("")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ParseStrict("10x1")
	var digitErr ErrInvalidDigit
	require.True(t, errors.As(err, &digitErr))
	require.Equal(t, 2, digitErr.Pos)
	require.Equal(t, 'x', digitErr.Char)
}

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var v Value
	require.True(t, v.IsZero())
	require.Equal(t, "0", Format(v))
	require.True(t, v.Equal(Zero()))
	require.Equal(t, Value{}, Parse(Format(Value{})))
	require.Equal(t, Value{}, Zero())
	for _, x := range []string{"", "0", "000", "2"} {
		require.Equal(t, Value{}, Parse(x), "input %q", x)
	}
	require.Equal(t, Value{}, Add(Zero(), Zero()))
	require.Equal(t, Value{}, And(Parse("100"), Parse("11")))
	require.Equal(t, Value{}, Mul(Parse("101"), Zero()))
	m := map[Value]bool{Zero(): true}
	require.True(t, m[Parse("00")])
	require.Equal(t, "101", Add(v, Parse("101")).String())
}

func TestOps(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		A, Op, B string
		Out      string
	}{
		{"111", "+", "111", "1110"},
		{"0", "+", "0", "0"},
		{"1", "+", "1", "10"},
		{"1111", "+", "1", "10000"},
		{"101", "+", "0", "101"},
		{"111", "&", "111", "111"},
		{"11", "&", "1010", "10"},
		{"100", "&", "11", "0"},
		{"111", "|", "111", "111"},
		{"11", "|", "1010", "1011"},
		{"0", "|", "0", "0"},
		{"1010", "*", "101", "110010"},
		{"1101", "*", "1011", "10001111"},
		{"1101", "*", "0", "0"},
		{"0", "*", "1101", "0"},
		{"1101", "*", "1", "1101"},
	}
	for _, tc := range tcs {
		t.Run(tc.A+tc.Op+tc.B, func(t *testing.T) {
			op, err := ParseOp(tc.Op)
			require.NoError(t, err)
			out := Compute(op, Parse(tc.A), Parse(tc.B))
			require.Equal(t, tc.Out, out.String())
		})
	}
}

func TestParseOp(t *testing.T) {
	t.Parallel()
	for _, op := range Ops {
		actual, err := ParseOp(string(op))
		require.NoError(t, err)
		assert.Equal(t, op, actual)
		assert.NotEqual(t, "unknown", op.Name())
	}
	for _, token := range []string{"", "-", "/", "++", "add", "^"} {
		_, err := ParseOp(token)
		var opErr ErrUnknownOp
		require.ErrorAs(t, err, &opErr, "token %q", token)
		require.Equal(t, token, opErr.Token)
	}
}

func TestComputeUnknownOp(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		Compute(Op("-"), One(), One())
	})
}

func TestText(t *testing.T) {
	t.Parallel()
	data, err := Parse("0110").MarshalText()
	require.NoError(t, err)
	require.Equal(t, "110", string(data))

	var v Value
	require.NoError(t, v.UnmarshalText([]byte("0011")))
	require.Equal(t, "11", v.String())
	require.Error(t, v.UnmarshalText([]byte("2")))
}

func TestLongOperands(t *testing.T) {
	t.Parallel()
	// 2^200 - 1 plus 1 carries all the way through.
	ones := make([]byte, 200)
	for i := range ones {
		ones[i] = '1'
	}
	sum := Add(Parse(string(ones)), One())
	require.Equal(t, 201, sum.Len())
	require.Equal(t, byte('1'), sum.String()[0])
	require.Equal(t, Zero(), Parse(sum.String()[1:]))
}
