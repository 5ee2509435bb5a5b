package syntax

// Operator identifies a binary, unary or comparison operator. Names follow
// the source language's own abstract grammar so diagnostics read naturally.
type Operator int

const (
	OpInvalid Operator = iota

	// binary
	Add
	Sub
	Mult
	Div
	FloorDiv
	Mod
	Pow
	MatMult
	BitOr
	BitXor
	BitAnd
	LShift
	RShift

	// unary
	USub
	UAdd
	Invert
	Not

	// comparison
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var operatorNames = [...]string{
	OpInvalid: "Invalid",
	Add:       "Add",
	Sub:       "Sub",
	Mult:      "Mult",
	Div:       "Div",
	FloorDiv:  "FloorDiv",
	Mod:       "Mod",
	Pow:       "Pow",
	MatMult:   "MatMult",
	BitOr:     "BitOr",
	BitXor:    "BitXor",
	BitAnd:    "BitAnd",
	LShift:    "LShift",
	RShift:    "RShift",
	USub:      "USub",
	UAdd:      "UAdd",
	Invert:    "Invert",
	Not:       "Not",
	Eq:        "Eq",
	NotEq:     "NotEq",
	Lt:        "Lt",
	LtE:       "LtE",
	Gt:        "Gt",
	GtE:       "GtE",
	Is:        "Is",
	IsNot:     "IsNot",
	In:        "In",
	NotIn:     "NotIn",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return "Invalid"
	}
	return operatorNames[o]
}

// OperatorByName returns the operator with the given abstract-grammar name,
// e.g. "Add" or "NotEq".
func OperatorByName(name string) (Operator, bool) {
	for i, n := range operatorNames {
		if n == name && Operator(i) != OpInvalid {
			return Operator(i), true
		}
	}
	return OpInvalid, false
}
