// package binval implements arbitrary length unsigned binary numbers.
//
// Values are stored as strings of '0' and '1' digits, most significant bit first,
// and are always in canonical form: no leading zeros unless the value is zero.
package binval

import "strings"

// Value is an immutable unsigned binary number.
// The zero value of Value is the number zero.
type Value struct {
	// digits is empty for zero, so that zero has a single representation.
	digits string
}

// Parse returns the Value represented by raw.
// If raw contains any character other than '0' or '1' the result is zero;
// Parse never fails. Use ParseStrict to reject malformed input.
func Parse(raw string) Value {
	for i := 0; i < len(raw); i++ {
		if !isDigit(raw[i]) {
			return Zero()
		}
	}
	return Value{digits: trimLeadingZeros(raw)}
}

// ParseStrict is like Parse, but returns an error instead of falling back to zero.
func ParseStrict(raw string) (Value, error) {
	if raw == "" {
		return Value{}, ErrEmpty
	}
	for i, r := range raw {
		if r != '0' && r != '1' {
			return Value{}, ErrInvalidDigit{Pos: i, Char: r}
		}
	}
	return Value{digits: trimLeadingZeros(raw)}, nil
}

// Zero returns the canonical zero.
func Zero() Value {
	return Value{}
}

// One returns the canonical one.
func One() Value {
	return Value{digits: "1"}
}

// Format returns the canonical digit string for v.
func Format(v Value) string {
	return v.String()
}

func (v Value) String() string {
	if v.digits == "" {
		return "0"
	}
	return v.digits
}

// Len returns the number of digits in the canonical form of v.
func (v Value) Len() int {
	return len(v.String())
}

func (v Value) IsZero() bool {
	return v.digits == ""
}

func (v Value) Equal(other Value) bool {
	return v == other
}

// bit returns the i-th bit of v counting from the least significant bit.
// Bits past the most significant bit are 0.
func (v Value) bit(i int) uint8 {
	s := v.String()
	if i >= len(s) {
		return 0
	}
	return s[len(s)-1-i] - '0'
}

func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses strictly.
func (v *Value) UnmarshalText(data []byte) error {
	x, err := ParseStrict(string(data))
	if err != nil {
		return err
	}
	*v = x
	return nil
}

// fromLSBFirst builds a canonical Value from bits stored least significant first.
// buf is reversed in place.
func fromLSBFirst(buf []byte) Value {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return Value{digits: trimLeadingZeros(string(buf))}
}

// trimLeadingZeros strips every leading '0'.
// Zero becomes the empty string, which String renders as "0".
func trimLeadingZeros(x string) string {
	return strings.TrimLeft(x, "0")
}

func isDigit(c byte) bool {
	return c == '0' || c == '1'
}
