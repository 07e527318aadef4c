package bincalc

import (
	"lukechampine.com/blake3"

	"bincalc.org/bincalc/binval"
	"bincalc.org/bincalc/internal/cid"
)

// CID is a Content ID
type CID = cid.ID

// Hash calculates the hash of x.
func Hash(x []byte) (ret CID) {
	h := blake3.New(32, nil)
	h.Write(x)
	h.Sum(ret[:0])
	return ret
}

// CalcID returns the content ID of applying op to a and b.
// Operands are hashed in canonical form, so equivalent inputs share an ID.
func CalcID(op binval.Op, a, b binval.Value) CID {
	var buf []byte
	buf = append(buf, op.String()...)
	buf = append(buf, 0)
	buf = append(buf, a.String()...)
	buf = append(buf, 0)
	buf = append(buf, b.String()...)
	return Hash(buf)
}
