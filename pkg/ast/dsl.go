package ast

// Literal and reference helpers.

func Ref(name string) *Reference {
	return NewReference(name)
}

func Int(value int64) *IntLiteral {
	return NewIntLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BoolLiteral {
	return NewBoolLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Atom(name string) *AtomLiteral {
	return NewAtomLiteral(name)
}

func Ctor(name string) *Constructor {
	return NewConstructor(name)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

// Type expression helpers.

func Ty(name string) *SimpleType {
	return NewSimpleType(name)
}

func ArrTy(element TypeExpression) *ArrayType {
	return NewArrayType(element)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(BinaryOperator(op), left, right)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNot, operand)
}

func Paren(expr Expression) *Parenthesized {
	return NewParenthesized(expr)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func CallName(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(Ref(name), args)
}

func Field(stem Expression, name string) *FieldAccess {
	return NewFieldAccess(stem, name)
}

func Index(array Expression, index Expression) *ArrayAccess {
	return NewArrayAccess(array, index)
}

func Assign(left, right Expression) *Assignment {
	return NewAssignment(left, right)
}

// Statement helpers.

func Prog(statements ...Statement) *Root {
	return NewRoot(statements)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expression) *ExpressionStatement {
	return Expr(CallName("print", expr))
}

func Var(name string, typ TypeExpression, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(name, typ, initializer)
}

func Param(name string, typ TypeExpression) *Parameter {
	return NewParameter(name, typ)
}

func Fn(name string, params []*Parameter, returnType TypeExpression, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(name, params, returnType, Blk(body...))
}

func FieldDecl(name string, typ TypeExpression) *FieldDeclaration {
	return NewFieldDeclaration(name, typ)
}

func Struct(name string, fields ...*FieldDeclaration) *StructDeclaration {
	return NewStructDeclaration(name, fields)
}

func If(condition Expression, then Statement, otherwise Statement) *IfStatement {
	return NewIfStatement(condition, then, otherwise)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Ret(expr Expression) *ReturnStatement {
	return NewReturnStatement(expr)
}

// Logic helpers.

func AtomDecl(name string) *AtomDeclaration {
	return NewAtomDeclaration(name)
}

func Fact(functor string, args ...Expression) *FactDeclaration {
	return NewFactDeclaration(functor, args)
}

func Rule(functor string, params []*Parameter, body LogicExpression) *RuleDeclaration {
	return NewRuleDeclaration(functor, params, body)
}

func Pred(functor string, args ...Expression) *PredicateCall {
	return NewPredicateCall(functor, args)
}

func Unbound(name string, typ TypeExpression) *UnboundParameter {
	return NewUnboundParameter(name, typ)
}

func Unify(left, right *PredicateCall) *Unification {
	return NewUnification(left, right)
}

func And(left, right LogicExpression) *LogicBinary {
	return NewLogicBinary(LogicAnd, left, right)
}

func Or(left, right LogicExpression) *LogicBinary {
	return NewLogicBinary(LogicOr, left, right)
}

func LNot(operand LogicExpression) *LogicNot {
	return NewLogicNot(operand)
}

func LParen(expr LogicExpression) *LogicParenthesized {
	return NewLogicParenthesized(expr)
}

func Query(target string, query Expression) *BoolQuery {
	return NewBoolQuery(Ref(target), query)
}
