package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/semantic"
	"sigh/interpreter-go/pkg/types"
)

func TestDisplayString(t *testing.T) {
	point := ast.Struct("Point", ast.FieldDecl("x", ast.Ty("Int")), ast.FieldDecl("y", ast.Ty("Float")))
	instance := NewStructValue(point)
	instance.Fields["y"] = FloatValue{Val: 2}
	instance.Fields["x"] = IntValue{Val: 1}

	cases := []struct {
		value Value
		want  string
	}{
		{IntValue{Val: 42}, "42"},
		{FloatValue{Val: 1}, "1.0"},
		{FloatValue{Val: 0.5}, "0.5"},
		{FloatValue{Val: math.Inf(1)}, "Infinity"},
		{FloatValue{Val: math.NaN()}, "NaN"},
		{BoolValue{Val: true}, "true"},
		{StringValue{Val: "hi"}, "hi"},
		{Null, "null"},
		{AtomValue{Name: "poodle"}, "poodle"},
		{&ArrayValue{Elements: []Value{IntValue{Val: 1}, &ArrayValue{Elements: []Value{StringValue{Val: "a"}}}}}, "[1, [a]]"},
		{instance, "{x=1, y=2.0}"},
		{FunctionValue{Decl: ast.Fn("f", nil, nil)}, "f"},
		{ConstructorValue{Decl: point}, "$Point"},
		{TypeValue{Name: "Point", Decl: point}, "Point"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DisplayString(tc.value))
	}
}

func TestEqualUsesIdentityForReferences(t *testing.T) {
	a := &ArrayValue{Elements: []Value{IntValue{Val: 1}}}
	b := &ArrayValue{Elements: []Value{IntValue{Val: 1}}}
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a))

	assert.True(t, Equal(StringValue{Val: "x"}, StringValue{Val: "x"}))
	assert.False(t, Equal(IntValue{Val: 1}, FloatValue{Val: 1}))
	assert.True(t, NumericEqual(IntValue{Val: 1}, FloatValue{Val: 1}))
	assert.False(t, Equal(Null, Void))
}

func TestEnvironmentReadWrite(t *testing.T) {
	rootScope := semantic.NewScope(ast.Prog(), nil)
	blockScope := semantic.NewScope(ast.Blk(), rootScope)
	root := NewEnvironment(rootScope, nil)
	block := NewEnvironment(blockScope, root)

	require.NoError(t, block.Write(rootScope, "x", IntValue{Val: 3}, types.Float))
	v, err := block.Read(rootScope, "x")
	require.NoError(t, err)
	assert.Equal(t, FloatValue{Val: 3}, v)

	_, err = block.Read(blockScope, "y")
	assert.True(t, IsFault(err, EvaluationFault))

	orphan := semantic.NewScope(ast.Blk(), rootScope)
	_, err = block.Read(orphan, "x")
	assert.True(t, IsFault(err, EvaluationFault))

	assert.Same(t, root, block.Root())
	assert.Equal(t, []string{"x"}, root.Keys())
}

func TestPredicateStoreFacts(t *testing.T) {
	store := NewPredicateStore()
	require.NoError(t, store.AddFact("dog", []Value{AtomValue{Name: "a"}, AtomValue{Name: "b"}}))

	entry, ok := store.Lookup("dog")
	require.True(t, ok)
	assert.True(t, entry.Contains([]Value{AtomValue{Name: "b"}, AtomValue{Name: "a"}}))
	assert.True(t, entry.Contains([]Value{AtomValue{Name: "a"}, AtomValue{Name: "a"}}))
	assert.False(t, entry.Contains([]Value{AtomValue{Name: "c"}}))

	err := store.AddFact("dog", []Value{AtomValue{Name: "a"}, AtomValue{Name: "b"}})
	assert.True(t, IsFault(err, DuplicateFactError))

	err = store.SetRule("dog", &Rule{Decl: ast.Rule("dog", nil, ast.Atom("x"))})
	assert.True(t, IsFault(err, ConflictingPredicateKind))
}

func TestPredicateStoreRules(t *testing.T) {
	store := NewPredicateStore()
	first := &Rule{Decl: ast.Rule("cat", nil, ast.Atom("x"))}
	second := &Rule{Decl: ast.Rule("cat", nil, ast.Atom("y"))}
	require.NoError(t, store.SetRule("cat", first))
	require.NoError(t, store.SetRule("cat", second))

	entry, _ := store.Lookup("cat")
	assert.Same(t, second, entry.Rule)

	err := store.AddFact("cat", []Value{IntValue{Val: 1}})
	assert.True(t, IsFault(err, ConflictingPredicateKind))
	assert.Equal(t, []string{"cat"}, store.Functors())
}
