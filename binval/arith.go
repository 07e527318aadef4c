package binval

import "strings"

// Add returns a + b.
func Add(a, b Value) Value {
	n := max(a.Len(), b.Len())
	buf := make([]byte, 0, n+1)
	var carry uint8
	for i := 0; i < a.Len() || i < b.Len() || carry != 0; i++ {
		sum := a.bit(i) + b.bit(i) + carry
		buf = append(buf, '0'+sum%2)
		carry = sum / 2
	}
	return fromLSBFirst(buf)
}

// Or returns the bitwise OR of a and b, aligned at the least significant bit.
func Or(a, b Value) Value {
	return bitwise(a, b, func(x, y uint8) uint8 { return x | y })
}

// And returns the bitwise AND of a and b, aligned at the least significant bit.
func And(a, b Value) Value {
	return bitwise(a, b, func(x, y uint8) uint8 { return x & y })
}

func bitwise(a, b Value, fn func(x, y uint8) uint8) Value {
	n := max(a.Len(), b.Len())
	buf := make([]byte, n)
	for i := range n {
		buf[i] = '0' + fn(a.bit(i), b.bit(i))
	}
	return fromLSBFirst(buf)
}

// Mul returns a * b using shift and add.
// For each set bit of b at distance k from the least significant bit,
// a shifted left by k is added to the result.
func Mul(a, b Value) Value {
	ret := Zero()
	if a.IsZero() {
		return ret
	}
	for k := 0; k < b.Len(); k++ {
		if b.bit(k) == 0 {
			continue
		}
		shifted := Parse(a.String() + strings.Repeat("0", k))
		ret = Add(ret, shifted)
	}
	return ret
}
