package types

import (
	"strings"

	"sigh/interpreter-go/pkg/ast"
)

// Type is a static type attached to a node by the analysis pass.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveInt    PrimitiveKind = "Int"
	PrimitiveFloat  PrimitiveKind = "Float"
	PrimitiveBool   PrimitiveKind = "Bool"
	PrimitiveString PrimitiveKind = "String"
	PrimitiveAtom   PrimitiveKind = "Atom"
	PrimitiveNull   PrimitiveKind = "Null"
	PrimitiveVoid   PrimitiveKind = "Void"
	PrimitiveType   PrimitiveKind = "Type"
)

type Primitive struct {
	Kind PrimitiveKind
}

func (p Primitive) Name() string { return string(p.Kind) }

var (
	Int    Type = Primitive{Kind: PrimitiveInt}
	Float  Type = Primitive{Kind: PrimitiveFloat}
	Bool   Type = Primitive{Kind: PrimitiveBool}
	String Type = Primitive{Kind: PrimitiveString}
	Atom   Type = Primitive{Kind: PrimitiveAtom}
	Null   Type = Primitive{Kind: PrimitiveNull}
	Void   Type = Primitive{Kind: PrimitiveVoid}
	TypeT  Type = Primitive{Kind: PrimitiveType}
)

// Builtins maps the type names visible in the root scope.
var Builtins = map[string]Type{
	"Int":    Int,
	"Float":  Float,
	"Bool":   Bool,
	"String": String,
	"Atom":   Atom,
	"Void":   Void,
	"Type":   TypeT,
}

type ArrayType struct {
	Element Type
}

func (a ArrayType) Name() string { return a.Element.Name() + "[]" }

type StructType struct {
	Decl *ast.StructDeclaration
}

func (s StructType) Name() string { return s.Decl.Name }

type FunctionType struct {
	Params []Type
	Return Type
}

func (f FunctionType) Name() string {
	parts := make([]string, len(f.Params))
	for idx, param := range f.Params {
		parts[idx] = param.Name()
	}
	return "(" + strings.Join(parts, ",") + ") -> " + f.Return.Name()
}

// PredicateType is the type of a functor: facts and rules share it.
type PredicateType struct {
	Functor string
	Params  []Type
}

func (p PredicateType) Name() string {
	parts := make([]string, len(p.Params))
	for idx, param := range p.Params {
		parts[idx] = param.Name()
	}
	return p.Functor + "(" + strings.Join(parts, ",") + ")"
}

func isKind(t Type, kind PrimitiveKind) bool {
	p, ok := t.(Primitive)
	return ok && p.Kind == kind
}

func IsInt(t Type) bool    { return isKind(t, PrimitiveInt) }
func IsFloat(t Type) bool  { return isKind(t, PrimitiveFloat) }
func IsBool(t Type) bool   { return isKind(t, PrimitiveBool) }
func IsString(t Type) bool { return isKind(t, PrimitiveString) }
func IsNull(t Type) bool   { return isKind(t, PrimitiveNull) }
func IsVoid(t Type) bool   { return isKind(t, PrimitiveVoid) }

func IsNumeric(t Type) bool { return IsInt(t) || IsFloat(t) }

// IsPrimitive reports whether values of t compare by value rather than by
// identity.
func IsPrimitive(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	switch p.Kind {
	case PrimitiveInt, PrimitiveFloat, PrimitiveBool, PrimitiveString, PrimitiveAtom, PrimitiveNull:
		return true
	}
	return false
}

// IsReference reports whether null can stand in for a value of t.
func IsReference(t Type) bool {
	switch t.(type) {
	case ArrayType, StructType, FunctionType:
		return true
	}
	return IsString(t) || IsNull(t)
}

// Same reports structural type identity.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case ArrayType:
		bt, ok := b.(ArrayType)
		return ok && Same(at.Element, bt.Element)
	case StructType:
		bt, ok := b.(StructType)
		return ok && at.Decl == bt.Decl
	case FunctionType:
		bt, ok := b.(FunctionType)
		if !ok || len(at.Params) != len(bt.Params) || !Same(at.Return, bt.Return) {
			return false
		}
		for idx := range at.Params {
			if !Same(at.Params[idx], bt.Params[idx]) {
				return false
			}
		}
		return true
	case PredicateType:
		bt, ok := b.(PredicateType)
		return ok && at.Functor == bt.Functor && len(at.Params) == len(bt.Params)
	}
	return a.Name() == b.Name()
}

// IsAssignable reports whether a value of type from can be stored in a slot of
// type to. Int widens to Float and null fits any reference type.
func IsAssignable(from, to Type) bool {
	if from == nil || to == nil || IsVoid(from) {
		return false
	}
	if Same(from, to) {
		return true
	}
	if IsInt(from) && IsFloat(to) {
		return true
	}
	if IsNull(from) && IsReference(to) {
		return true
	}
	if fa, ok := from.(ArrayType); ok {
		if ta, ok := to.(ArrayType); ok {
			return IsAssignable(fa.Element, ta.Element)
		}
	}
	return false
}

// Comparable reports whether two bound unification operands may be compared:
// identical types, or both numeric.
func Comparable(a, b Type) bool {
	return Same(a, b) || (IsNumeric(a) && IsNumeric(b))
}
