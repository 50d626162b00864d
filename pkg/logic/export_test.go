package logic

import (
	"testing"

	mangle "github.com/google/mangle/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
)

func newFrame(t *testing.T) *runtime.Environment {
	t.Helper()
	return runtime.NewEnvironment(semantic.NewScope(ast.Prog(), nil), nil)
}

func TestExportFacts(t *testing.T) {
	env := newFrame(t)
	store := env.Predicates()
	require.NoError(t, store.AddFact("dog", []runtime.Value{runtime.AtomValue{Name: "poodle"}, runtime.IntValue{Val: 3}}))
	require.NoError(t, store.AddFact("dog", []runtime.Value{runtime.AtomValue{Name: "labrador"}, runtime.IntValue{Val: 5}}))
	require.NoError(t, store.AddFact("cat", []runtime.Value{runtime.StringValue{Val: "tom"}, runtime.FloatValue{Val: 1.5}, runtime.BoolValue{Val: true}}))
	require.NoError(t, store.AddFact("cat", []runtime.Value{&runtime.ArrayValue{}}))

	exported, stats := ExportFacts(env)
	assert.Equal(t, ExportStats{Exported: 3, Skipped: 1}, stats)

	dogs, err := Facts(exported, "dog", 2)
	require.NoError(t, err)
	require.Len(t, dogs, 2)
	poodle, err := mangle.Name("/poodle")
	require.NoError(t, err)
	assert.Contains(t, dogs, mangle.NewAtom("dog", poodle, mangle.Number(3)))

	cats, err := Facts(exported, "cat", 3)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, mangle.NewAtom("cat", mangle.String("tom"), mangle.Float64(1.5), mangle.TrueConstant), cats[0])

	none, err := Facts(exported, "cat", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLines(t *testing.T) {
	env := newFrame(t)
	store := env.Predicates()
	require.NoError(t, store.AddFact("dog", []runtime.Value{runtime.IntValue{Val: 2}}))
	require.NoError(t, store.AddFact("dog", []runtime.Value{runtime.IntValue{Val: 1}}))
	require.NoError(t, store.AddFact("cat", []runtime.Value{runtime.AtomValue{Name: "tom"}}))
	require.NoError(t, store.AddFact("mouse", []runtime.Value{runtime.AtomValue{Name: "jerry"}, runtime.StringValue{Val: "squeak"}}))

	exported, _ := ExportFacts(env)
	lines, err := Lines(exported)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat(/tom).", "dog(1).", "dog(2).", `mouse(/jerry,"squeak").`}, lines)
}

func TestExportSkipsRules(t *testing.T) {
	env := newFrame(t)
	rule := ast.Rule("dog", []*ast.Parameter{ast.Param("x", ast.Ty("Int"))}, ast.Pred("cat", ast.Ref("x")))
	require.NoError(t, env.Predicates().SetRule("dog", &runtime.Rule{Decl: rule}))

	_, stats := ExportFacts(env)
	assert.Equal(t, ExportStats{}, stats)
}

func TestExportEmptyFrame(t *testing.T) {
	env := newFrame(t)
	exported, stats := ExportFacts(env)
	assert.Equal(t, ExportStats{}, stats)
	assert.False(t, env.HasPredicates())
	facts, err := Facts(exported, "dog", 1)
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestResolverOptions(t *testing.T) {
	r := NewResolver(semantic.NewTable(), nil)
	assert.Equal(t, DefaultMaxDepth, r.MaxDepth())

	r = NewResolver(semantic.NewTable(), nil, WithMaxDepth(4), WithLogger(nil))
	assert.Equal(t, 4, r.MaxDepth())
	assert.NotNil(t, r.logger)

	r = NewResolver(semantic.NewTable(), nil, WithMaxDepth(0))
	assert.Equal(t, DefaultMaxDepth, r.MaxDepth())
}
