package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
)

func TestArithmeticPromotesToFloat(t *testing.T) {
	// 2 * (4-1) * 4.0 / 6 % (2+1)
	expr := ast.Bin("%",
		ast.Bin("/",
			ast.Bin("*",
				ast.Bin("*", ast.Int(2), ast.Paren(ast.Bin("-", ast.Int(4), ast.Int(1)))),
				ast.Flt(4.0)),
			ast.Int(6)),
		ast.Paren(ast.Bin("+", ast.Int(2), ast.Int(1))))

	val := mustReturn(t, ast.Ret(expr))
	assert.Equal(t, runtime.FloatValue{Val: 1.0}, val)
	assert.Equal(t, "1.0", runtime.DisplayString(val))
}

func TestIntegerArithmeticTruncates(t *testing.T) {
	assert.Equal(t, runtime.IntValue{Val: 2}, mustReturn(t, ast.Ret(ast.Bin("/", ast.Int(7), ast.Int(3)))))
	assert.Equal(t, runtime.IntValue{Val: -1}, mustReturn(t, ast.Ret(ast.Bin("%", ast.Int(-7), ast.Int(3)))))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustReturn(t, ast.Ret(ast.Bin("<=", ast.Int(2), ast.Flt(2.5)))))
}

func TestIntegerDivisionByZero(t *testing.T) {
	div := ast.WithSpan(ast.Bin("/", ast.Int(1), ast.Int(0)), ast.At(4, 9))
	err := faultOf(t, ast.Ret(div))
	fault := requireFault(t, err, runtime.ArithmeticFault)
	assert.Same(t, div, fault.Node)
	assert.Equal(t, "runtime: line 4, column 9 ArithmeticFault: integer division by zero", DescribeFault(err))

	requireFault(t, faultOf(t, ast.Ret(ast.Bin("%", ast.Int(1), ast.Int(0)))), runtime.ArithmeticFault)

	val := mustReturn(t, ast.Ret(ast.Bin("/", ast.Flt(1), ast.Int(0))))
	assert.Equal(t, "Infinity", runtime.DisplayString(val))
}

func TestShortCircuit(t *testing.T) {
	res, out, err := runProgram(t, nil, ast.Ret(ast.Bin("||", ast.Bool(true), ast.Paren(ast.Bin("==", ast.CallName("print", ast.Str("x")), ast.Str("x"))))))
	require.NoError(t, err)
	assert.Equal(t, runtime.BoolValue{Val: true}, res.Value)
	assert.Empty(t, out)

	res, out, err = runProgram(t, nil, ast.Ret(ast.Bin("&&", ast.Bool(false), ast.Paren(ast.Bin("==", ast.CallName("print", ast.Str("x")), ast.Str("x"))))))
	require.NoError(t, err)
	assert.Equal(t, runtime.BoolValue{Val: false}, res.Value)
	assert.Empty(t, out)

	res, out, err = runProgram(t, nil, ast.Ret(ast.Bin("&&", ast.Bool(true), ast.Paren(ast.Bin("==", ast.CallName("print", ast.Str("x")), ast.Str("x"))))))
	require.NoError(t, err)
	assert.Equal(t, runtime.BoolValue{Val: true}, res.Value)
	assert.Equal(t, "x\n", out)
}

func TestStringConcatenation(t *testing.T) {
	assert.Equal(t, runtime.StringValue{Val: "1a"}, mustReturn(t, ast.Ret(ast.Bin("+", ast.Int(1), ast.Str("a")))))
	assert.Equal(t, runtime.StringValue{Val: "a2.5"}, mustReturn(t, ast.Ret(ast.Bin("+", ast.Str("a"), ast.Flt(2.5)))))
	assert.Equal(t, runtime.StringValue{Val: "[1, 2]!"}, mustReturn(t, ast.Ret(ast.Bin("+", ast.Arr(ast.Int(1), ast.Int(2)), ast.Str("!")))))

	out := mustOutput(t,
		ast.Var("str", ast.Ty("String"), ast.Null()),
		ast.Print(ast.Bin("+", ast.Ref("str"), ast.Int(1))),
	)
	assert.Equal(t, "null1\n", out)
}

func TestEquality(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want bool
	}{
		{"int and float", ast.Bin("==", ast.Int(1), ast.Flt(1.0)), true},
		{"strings by value", ast.Bin("==", ast.Str("a"), ast.Str("a")), true},
		{"arrays by identity", ast.Bin("==", ast.Arr(ast.Int(1)), ast.Arr(ast.Int(1))), false},
		{"not equal", ast.Bin("!=", ast.Int(1), ast.Int(2)), true},
		{"null", ast.Bin("==", ast.Null(), ast.Null()), true},
		{"atoms by name", ast.Bin("==", ast.Atom("a"), ast.Atom("a")), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, runtime.BoolValue{Val: tc.want}, mustReturn(t, ast.Ret(tc.expr)))
		})
	}

	same := mustReturn(t,
		ast.Var("a", ast.ArrTy(ast.Ty("Int")), ast.Arr(ast.Int(1))),
		ast.Ret(ast.Bin("==", ast.Ref("a"), ast.Ref("a"))),
	)
	assert.Equal(t, runtime.BoolValue{Val: true}, same)
}

func TestBlocksShadowOuterBindings(t *testing.T) {
	out := mustOutput(t,
		ast.Var("x", ast.Ty("Int"), ast.Int(1)),
		ast.Print(ast.Ref("x")),
		ast.Blk(
			ast.Var("x", ast.Ty("Int"), ast.Int(2)),
			ast.Print(ast.Ref("x")),
		),
		ast.Print(ast.Ref("x")),
	)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestIfElseChain(t *testing.T) {
	program := func(n int64) []ast.Statement {
		return []ast.Statement{
			ast.Var("n", ast.Ty("Int"), ast.Int(n)),
			ast.If(ast.Bin("<", ast.Ref("n"), ast.Int(0)),
				ast.Print(ast.Str("negative")),
				ast.If(ast.Bin("==", ast.Ref("n"), ast.Int(0)),
					ast.Print(ast.Str("zero")),
					ast.Print(ast.Str("positive")))),
		}
	}
	assert.Equal(t, "negative\n", mustOutput(t, program(-3)...))
	assert.Equal(t, "zero\n", mustOutput(t, program(0)...))
	assert.Equal(t, "positive\n", mustOutput(t, program(8)...))
}

func TestConditionMustBeBool(t *testing.T) {
	err := faultOf(t, ast.If(ast.Int(1), ast.Print(ast.Str("x")), nil))
	requireFault(t, err, runtime.TypeMismatch)
}

func TestWhileLoop(t *testing.T) {
	out := mustOutput(t,
		ast.Var("i", ast.Ty("Int"), ast.Int(0)),
		ast.While(ast.Bin("<", ast.Ref("i"), ast.Int(3)), ast.Blk(
			ast.Print(ast.Ref("i")),
			ast.Expr(ast.Assign(ast.Ref("i"), ast.Bin("+", ast.Ref("i"), ast.Int(1)))),
		)),
	)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestWhileReusesBodyFrame(t *testing.T) {
	// The fact is declared after the query in the loop body. The second
	// iteration sees the first iteration's fact because both run in the same
	// frame.
	val := mustReturn(t,
		ast.Var("i", ast.Ty("Int"), ast.Int(0)),
		ast.Var("seen", ast.Ty("String"), ast.Str("")),
		ast.While(ast.Bin("<", ast.Ref("i"), ast.Int(2)), ast.Blk(
			ast.Var("q", ast.Ty("Bool"), ast.Bool(false)),
			ast.Expr(ast.Query("q", ast.Pred("mark", ast.Int(0)))),
			ast.Expr(ast.Assign(ast.Ref("seen"), ast.Bin("+", ast.Ref("seen"), ast.Ref("q")))),
			ast.Fact("mark", ast.Ref("i")),
			ast.Expr(ast.Assign(ast.Ref("i"), ast.Bin("+", ast.Ref("i"), ast.Int(1)))),
		)),
		ast.Ret(ast.Ref("seen")),
	)
	assert.Equal(t, runtime.StringValue{Val: "falsetrue"}, val)
}

func TestTopLevelReturnStopsEvaluation(t *testing.T) {
	res, out, err := runProgram(t, nil,
		ast.Ret(ast.Int(1)),
		ast.Print(ast.Str("unreachable")),
	)
	require.NoError(t, err)
	assert.True(t, res.Returned)
	assert.Equal(t, runtime.IntValue{Val: 1}, res.Value)
	assert.Empty(t, out)

	res, _, err = runProgram(t, nil, ast.Print(ast.Str("done")))
	require.NoError(t, err)
	assert.False(t, res.Returned)
	assert.Equal(t, runtime.Void, res.Value)
}

func TestFunctions(t *testing.T) {
	fact := ast.Fn("fact", []*ast.Parameter{ast.Param("n", ast.Ty("Int"))}, ast.Ty("Int"),
		ast.If(ast.Bin("<=", ast.Ref("n"), ast.Int(1)),
			ast.Ret(ast.Int(1)),
			nil),
		ast.Ret(ast.Bin("*", ast.Ref("n"), ast.CallName("fact", ast.Bin("-", ast.Ref("n"), ast.Int(1))))),
	)
	assert.Equal(t, runtime.IntValue{Val: 120}, mustReturn(t, fact, ast.Ret(ast.CallName("fact", ast.Int(5)))))

	half := ast.Fn("half", []*ast.Parameter{ast.Param("x", ast.Ty("Float"))}, ast.Ty("Float"),
		ast.Ret(ast.Bin("/", ast.Ref("x"), ast.Int(2))),
	)
	assert.Equal(t, runtime.FloatValue{Val: 1.5}, mustReturn(t, half, ast.Ret(ast.CallName("half", ast.Int(3)))))

	widen := ast.Fn("one", nil, ast.Ty("Float"), ast.Ret(ast.Int(1)))
	assert.Equal(t, runtime.FloatValue{Val: 1}, mustReturn(t, widen, ast.Ret(ast.CallName("one"))))
}

func TestFunctionSeesRootBindings(t *testing.T) {
	out := mustOutput(t,
		ast.Var("greeting", ast.Ty("String"), ast.Str("hi")),
		ast.Fn("greet", nil, nil, ast.Print(ast.Ref("greeting"))),
		ast.Expr(ast.CallName("greet")),
		ast.Expr(ast.Assign(ast.Ref("greeting"), ast.Str("bye"))),
		ast.Expr(ast.CallName("greet")),
	)
	assert.Equal(t, "hi\nbye\n", out)
}

func TestFunctionWithoutReturnYieldsVoid(t *testing.T) {
	err := faultOf(t,
		ast.Fn("noop", nil, nil),
		ast.Var("x", ast.Ty("Int"), ast.CallName("noop")),
	)
	requireFault(t, err, runtime.TypeMismatch)
}

func TestCallArityMismatch(t *testing.T) {
	err := faultOf(t,
		ast.Fn("f", []*ast.Parameter{ast.Param("a", ast.Ty("Int"))}, nil),
		ast.Expr(ast.CallName("f", ast.Int(1), ast.Int(2))),
	)
	requireFault(t, err, runtime.ArityMismatch)

	requireFault(t, faultOf(t, ast.Expr(ast.CallName("print"))), runtime.ArityMismatch)
}

func TestPrintReturnsItsText(t *testing.T) {
	res, out, err := runProgram(t, nil, ast.Ret(ast.CallName("print", ast.Flt(2))))
	require.NoError(t, err)
	assert.Equal(t, runtime.StringValue{Val: "2.0"}, res.Value)
	assert.Equal(t, "2.0\n", out)
}

func TestStructs(t *testing.T) {
	point := ast.Struct("Point", ast.FieldDecl("x", ast.Ty("Int")), ast.FieldDecl("y", ast.Ty("Float")))
	out := mustOutput(t,
		point,
		ast.Var("p", ast.Ty("Point"), ast.Call(ast.Ctor("Point"), ast.Int(1), ast.Int(2))),
		ast.Print(ast.Ref("p")),
		ast.Expr(ast.Assign(ast.Field(ast.Ref("p"), "x"), ast.Int(3))),
		ast.Print(ast.Field(ast.Ref("p"), "x")),
		ast.Print(ast.Ctor("Point")),
		ast.Print(ast.Ref("Point")),
	)
	assert.Equal(t, "{x=1, y=2.0}\n3\n$Point\nPoint\n", out)
}

func TestStructsAreSharedByReference(t *testing.T) {
	val := mustReturn(t,
		ast.Struct("Box", ast.FieldDecl("v", ast.Ty("Int"))),
		ast.Var("a", ast.Ty("Box"), ast.Call(ast.Ctor("Box"), ast.Int(1))),
		ast.Var("b", ast.Ty("Box"), ast.Ref("a")),
		ast.Expr(ast.Assign(ast.Field(ast.Ref("b"), "v"), ast.Int(9))),
		ast.Ret(ast.Field(ast.Ref("a"), "v")),
	)
	assert.Equal(t, runtime.IntValue{Val: 9}, val)
}

func TestNullFieldAccess(t *testing.T) {
	box := ast.Struct("Box", ast.FieldDecl("v", ast.Ty("Int")))
	requireFault(t, faultOf(t,
		box,
		ast.Var("b", ast.Ty("Box"), ast.Null()),
		ast.Print(ast.Field(ast.Ref("b"), "v")),
	), runtime.NullReference)

	requireFault(t, faultOf(t,
		ast.Struct("Box", ast.FieldDecl("v", ast.Ty("Int"))),
		ast.Var("b", ast.Ty("Box"), ast.Null()),
		ast.Expr(ast.Assign(ast.Field(ast.Ref("b"), "v"), ast.Int(1))),
	), runtime.NullReference)
}

func TestArrays(t *testing.T) {
	val := mustReturn(t,
		ast.Var("a", ast.ArrTy(ast.Ty("Int")), ast.Arr(ast.Int(1), ast.Int(2))),
		ast.Expr(ast.Assign(ast.Index(ast.Ref("a"), ast.Int(1)), ast.Int(5))),
		ast.Ret(ast.Index(ast.Ref("a"), ast.Int(1))),
	)
	assert.Equal(t, runtime.IntValue{Val: 5}, val)

	assert.Equal(t, runtime.IntValue{Val: 1}, mustReturn(t, ast.Ret(ast.Field(ast.Arr(ast.Int(1)), "length"))))

	floats := mustReturn(t, ast.Ret(ast.Arr(ast.Int(1), ast.Flt(2.5))))
	assert.Equal(t, "[1.0, 2.5]", runtime.DisplayString(floats))
}

func TestArrayBounds(t *testing.T) {
	decl := ast.Var("a", ast.ArrTy(ast.Ty("Int")), ast.Arr(ast.Int(1), ast.Int(2)))
	requireFault(t, faultOf(t, decl, ast.Print(ast.Index(ast.Ref("a"), ast.Int(2)))), runtime.IndexOutOfRange)

	decl = ast.Var("a", ast.ArrTy(ast.Ty("Int")), ast.Arr(ast.Int(1), ast.Int(2)))
	requireFault(t, faultOf(t, decl, ast.Expr(ast.Assign(ast.Index(ast.Ref("a"), ast.Int(-1)), ast.Int(0)))), runtime.IndexOutOfRange)

	decl = ast.Var("a", ast.ArrTy(ast.Ty("Int")), ast.Null())
	requireFault(t, faultOf(t, decl, ast.Print(ast.Index(ast.Ref("a"), ast.Int(0)))), runtime.NullReference)
}

func TestElementAssignmentChecksBoundsBeforeRightSide(t *testing.T) {
	_, out, err := runProgram(t, nil,
		ast.Var("a", ast.ArrTy(ast.Ty("String")), ast.Arr(ast.Str("x"))),
		ast.Expr(ast.Assign(ast.Index(ast.Ref("a"), ast.Int(9)), ast.CallName("print", ast.Str("a")))),
	)
	requireFault(t, err, runtime.IndexOutOfRange)
	assert.Empty(t, out)
}

func TestAssignmentWidensToFloat(t *testing.T) {
	val := mustReturn(t,
		ast.Var("f", ast.Ty("Float"), ast.Int(1)),
		ast.Expr(ast.Assign(ast.Ref("f"), ast.Int(4))),
		ast.Ret(ast.Ref("f")),
	)
	assert.Equal(t, runtime.FloatValue{Val: 4}, val)
}

func TestReevaluationIsStable(t *testing.T) {
	expr := ast.Bin("+", ast.Bin("*", ast.Int(3), ast.Flt(1.5)), ast.Int(2))
	first := mustReturn(t, ast.Ret(expr))
	second := mustReturn(t, ast.Ret(expr))
	assert.Equal(t, first, second)
}

func TestUnresolvedFaultsAreWrapped(t *testing.T) {
	err := faultOf(t, ast.Expr(ast.Unbound("a", ast.Ty("Int"))))
	fault := requireFault(t, err, runtime.EvaluationFault)
	assert.NotNil(t, fault.Node)
}
