package runtime

import (
	"errors"
	"fmt"

	"sigh/interpreter-go/pkg/ast"
)

type FaultKind string

const (
	NullReference            FaultKind = "NullReference"
	IndexOutOfRange          FaultKind = "IndexOutOfRange"
	ArithmeticFault          FaultKind = "ArithmeticFault"
	ArityMismatch            FaultKind = "ArityMismatch"
	UnificationMismatch      FaultKind = "UnificationMismatch"
	AmbiguousUnification     FaultKind = "AmbiguousUnification"
	TypeMismatch             FaultKind = "TypeMismatch"
	ConflictingPredicateKind FaultKind = "ConflictingPredicateKind"
	DuplicateFactError       FaultKind = "DuplicateFactError"
	NonGroundFact            FaultKind = "NonGroundFact"
	InvalidQuery             FaultKind = "InvalidQuery"
	EvaluationFault          FaultKind = "EvaluationFault"
)

// Fault is the error type every runtime failure surfaces as. Node is the
// syntax node being evaluated when the fault was raised, when known.
type Fault struct {
	Kind    FaultKind
	Message string
	Node    ast.Node
	Err     error
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return string(f.Kind) + ": " + f.Message
}

func (f *Fault) Unwrap() error { return f.Err }

func NewFault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapFault turns an arbitrary error into an EvaluationFault.
func WrapFault(err error, node ast.Node) *Fault {
	return &Fault{Kind: EvaluationFault, Message: err.Error(), Node: node, Err: err}
}

// AsFault extracts the first Fault in err's chain.
func AsFault(err error) (*Fault, bool) {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}

// IsFault reports whether err carries a fault of the given kind.
func IsFault(err error, kind FaultKind) bool {
	fault, ok := AsFault(err)
	return ok && fault.Kind == kind
}
