package runtime

import "sigh/interpreter-go/pkg/ast"

// Kind identifies the runtime category of a value.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindNull
	KindAtom
	KindArray
	KindStruct
	KindFunction
	KindNativeFunction
	KindType
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	case KindAtom:
		return "atom"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindType:
		return "type"
	case KindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Value is implemented by all runtime values.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int64
}

func (IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// AtomValue is what an atom literal evaluates to: an opaque symbol compared by
// name.
type AtomValue struct {
	Name string
}

func (AtomValue) Kind() Kind { return KindAtom }

// VoidValue marks the absence of a value, such as the result of a call that
// did not return. It is never stored in a frame.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

var (
	Null Value = NullValue{}
	Void Value = VoidValue{}
)

type ArrayValue struct {
	Elements []Value
}

func (*ArrayValue) Kind() Kind { return KindArray }

// StructValue is a mutable instance of a declared struct.
type StructValue struct {
	Decl   *ast.StructDeclaration
	Fields map[string]Value
}

func (*StructValue) Kind() Kind { return KindStruct }

func NewStructValue(decl *ast.StructDeclaration) *StructValue {
	return &StructValue{Decl: decl, Fields: make(map[string]Value, len(decl.Fields))}
}

type FunctionValue struct {
	Decl *ast.FunctionDeclaration
}

func (FunctionValue) Kind() Kind { return KindFunction }

// NativeFunctionValue is a builtin implemented in Go.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  func(args []Value) (Value, error)
}

func (*NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// TypeValue is the value of a reference to a type name.
type TypeValue struct {
	Name string
	Decl ast.Declaration
}

func (TypeValue) Kind() Kind { return KindType }

// ConstructorValue is the value of `$Name`.
type ConstructorValue struct {
	Decl *ast.StructDeclaration
}

func (ConstructorValue) Kind() Kind { return KindConstructor }

// IsPrimitive reports whether v compares by value.
func IsPrimitive(v Value) bool {
	switch v.(type) {
	case IntValue, FloatValue, BoolValue, StringValue, NullValue, AtomValue:
		return true
	}
	return false
}

// Equal compares primitives by value and everything else by identity. Values
// of different kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av.Val == bv.Val
	case FloatValue:
		bv, ok := b.(FloatValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case AtomValue:
		bv, ok := b.(AtomValue)
		return ok && av.Name == bv.Name
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case VoidValue:
		_, ok := b.(VoidValue)
		return ok
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		return ok && av == bv
	case *StructValue:
		bv, ok := b.(*StructValue)
		return ok && av == bv
	case FunctionValue:
		bv, ok := b.(FunctionValue)
		return ok && av.Decl == bv.Decl
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	case TypeValue:
		bv, ok := b.(TypeValue)
		return ok && av.Name == bv.Name && av.Decl == bv.Decl
	case ConstructorValue:
		bv, ok := b.(ConstructorValue)
		return ok && av.Decl == bv.Decl
	}
	return false
}

// AsFloat returns the numeric value of an Int or Float.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n.Val), true
	case FloatValue:
		return n.Val, true
	}
	return 0, false
}

// NumericEqual compares two values, promoting Int to Float when the kinds
// differ. Non-numeric values fall back to Equal.
func NumericEqual(a, b Value) bool {
	af, aok := AsFloat(a)
	bf, bok := AsFloat(b)
	if aok && bok {
		if ai, ok := a.(IntValue); ok {
			if bi, ok := b.(IntValue); ok {
				return ai.Val == bi.Val
			}
		}
		return af == bf
	}
	return Equal(a, b)
}
