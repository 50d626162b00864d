package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/types"
)

func TestAnalyzeResolvesReferencesToDeclaringScope(t *testing.T) {
	decl := ast.Var("x", ast.Ty("Int"), ast.Int(1))
	inner := ast.Ref("x")
	block := ast.Blk(ast.Print(inner))
	root := ast.Prog(decl, block)

	table, err := Analyze(root)
	require.NoError(t, err)

	rootScope, ok := ScopeOf(table, root)
	require.True(t, ok)
	blockScope, ok := ScopeOf(table, block)
	require.True(t, ok)
	assert.Same(t, rootScope, blockScope.Parent)

	resolved, ok := DeclOf(table, inner)
	require.True(t, ok)
	assert.Same(t, decl, resolved)
	refScope, _ := ScopeOf(table, inner)
	assert.Same(t, rootScope, refScope)
	typ, _ := TypeOf(table, inner)
	assert.Equal(t, types.Int, typ)
}

func TestAnalyzeHoistsFunctions(t *testing.T) {
	call := ast.CallName("f", ast.Int(2))
	fn := ast.Fn("f", []*ast.Parameter{ast.Param("n", ast.Ty("Int"))}, ast.Ty("Float"), ast.Ret(ast.Ref("n")))
	root := ast.Prog(ast.Expr(call), fn)

	table, err := Analyze(root)
	require.NoError(t, err)

	typ, ok := TypeOf(table, call)
	require.True(t, ok)
	assert.Equal(t, types.Float, typ)

	body, ok := BodyScopeOf(table, fn)
	require.True(t, ok)
	assert.Equal(t, []string{"n"}, body.Names())
}

func TestAnalyzeResolvesPredicatesDeclaredLater(t *testing.T) {
	call := ast.Pred("cat", ast.Ref("breed"))
	rule := ast.Rule("dog", []*ast.Parameter{ast.Param("breed", ast.Ty("Int"))}, call)
	fact := ast.Fact("cat", ast.Int(1))
	root := ast.Prog(rule, fact)

	table, err := Analyze(root)
	require.NoError(t, err)

	decl, ok := DeclOf(table, call)
	require.True(t, ok)
	assert.Same(t, fact, decl)
}

func TestAnalyzeFactsExtendEnclosingFunctor(t *testing.T) {
	outer := ast.Fact("dog", ast.Int(1))
	inner := ast.Fact("dog", ast.Int(2))
	block := ast.Blk(inner)
	root := ast.Prog(outer, block)

	table, err := Analyze(root)
	require.NoError(t, err)

	rootScope, _ := ScopeOf(table, root)
	innerScope, _ := ScopeOf(table, inner)
	assert.Same(t, rootScope, innerScope)
	decl, _ := DeclOf(table, inner)
	assert.Same(t, outer, decl)
}

func TestAnalyzeDeclaresUnboundParametersAtRoot(t *testing.T) {
	param := ast.Unbound("a", ast.Ty("Int"))
	ref := ast.Ref("a")
	unify := ast.Unify(ast.Pred("dog", ast.Int(1)), ast.Pred("dog", param))
	root := ast.Prog(ast.Blk(unify, ast.Print(ref)))

	table, err := Analyze(root)
	require.NoError(t, err)

	rootScope, _ := ScopeOf(table, root)
	paramScope, _ := ScopeOf(table, param)
	assert.Same(t, rootScope, paramScope)
	decl, _ := DeclOf(table, ref)
	assert.Same(t, param, decl)
}

func TestAnalyzeReportsUnresolvedNames(t *testing.T) {
	root := ast.Prog(
		ast.Print(ast.WithSpan(ast.Ref("missing"), ast.At(2, 5))),
		ast.Var("y", ast.Ty("Nope"), ast.Int(1)),
	)

	_, err := Analyze(root)
	require.Error(t, err)
	var semErr *Error
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, []string{
		"line 2, column 5: could not resolve: missing",
		"unknown type Nope",
	}, semErr.Issues)
}

func TestAnalyzeAtomRedeclarationIsAllowed(t *testing.T) {
	root := ast.Prog(ast.AtomDecl("ready"), ast.AtomDecl("ready"))
	_, err := Analyze(root)
	require.NoError(t, err)
}
