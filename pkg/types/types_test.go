package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigh/interpreter-go/pkg/ast"
)

func TestIsAssignable(t *testing.T) {
	point := StructType{Decl: ast.Struct("Point")}
	other := StructType{Decl: ast.Struct("Point")}

	cases := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"same primitive", Int, Int, true},
		{"int widens to float", Int, Float, true},
		{"float does not narrow", Float, Int, false},
		{"int is not an atom", Int, Atom, false},
		{"null into string", Null, String, true},
		{"null into struct", Null, point, true},
		{"null into int", Null, Int, false},
		{"void is never assignable", Void, Void, false},
		{"arrays by element", ArrayType{Element: Int}, ArrayType{Element: Float}, true},
		{"struct identity", point, point, true},
		{"distinct struct declarations", point, other, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAssignable(tc.from, tc.to))
		})
	}
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(Int, Float))
	assert.True(t, Comparable(String, String))
	assert.False(t, Comparable(String, Int))
	assert.False(t, Comparable(Atom, Int))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Int[]", ArrayType{Element: Int}.Name())
	assert.Equal(t, "(Int,Float) -> Void", FunctionType{Params: []Type{Int, Float}, Return: Void}.Name())
	assert.Equal(t, "dog(Int)", PredicateType{Functor: "dog", Params: []Type{Int}}.Name())
}
