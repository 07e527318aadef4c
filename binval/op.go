package binval

import "fmt"

// Op is a binary operator token, as it appears in the calculator form.
type Op string

const (
	OpAdd Op = "+"
	OpOr  Op = "|"
	OpAnd Op = "&"
	OpMul Op = "*"
)

// Ops lists every supported operator.
var Ops = []Op{OpAdd, OpOr, OpAnd, OpMul}

// ParseOp validates an operator token.
func ParseOp(token string) (Op, error) {
	switch op := Op(token); op {
	case OpAdd, OpOr, OpAnd, OpMul:
		return op, nil
	default:
		return "", ErrUnknownOp{Token: token}
	}
}

// Name returns a word for the operator, suitable for identifiers and logs.
func (op Op) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpMul:
		return "mul"
	default:
		return "unknown"
	}
}

func (op Op) String() string {
	return string(op)
}

// Compute applies op to a and b.
// Compute panics if op was not obtained from ParseOp or one of the Op constants.
func Compute(op Op, a, b Value) Value {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpOr:
		return Or(a, b)
	case OpAnd:
		return And(a, b)
	case OpMul:
		return Mul(a, b)
	default:
		panic(fmt.Sprintf("binval: unknown operator %q", string(op)))
	}
}
