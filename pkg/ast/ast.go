package ast

type NodeType string

const (
	NodeRoot                 NodeType = "Root"
	NodeBlock                NodeType = "Block"
	NodeVarDeclaration       NodeType = "VarDeclaration"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeParameter            NodeType = "Parameter"
	NodeStructDeclaration    NodeType = "StructDeclaration"
	NodeFieldDeclaration     NodeType = "FieldDeclaration"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeIntLiteral           NodeType = "IntLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBoolLiteral          NodeType = "BoolLiteral"
	NodeNullLiteral          NodeType = "NullLiteral"
	NodeReference            NodeType = "Reference"
	NodeConstructor          NodeType = "Constructor"
	NodeArrayLiteral         NodeType = "ArrayLiteral"
	NodeFieldAccess          NodeType = "FieldAccess"
	NodeArrayAccess          NodeType = "ArrayAccess"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeAssignment           NodeType = "Assignment"
	NodeParenthesized        NodeType = "Parenthesized"
	NodeSimpleType           NodeType = "SimpleType"
	NodeArrayType            NodeType = "ArrayType"
	NodeAtomLiteral          NodeType = "AtomLiteral"
	NodeAtomDeclaration      NodeType = "AtomDeclaration"
	NodeFactDeclaration      NodeType = "FactDeclaration"
	NodeRuleDeclaration      NodeType = "RuleDeclaration"
	NodeUnification          NodeType = "Unification"
	NodeUnboundParameter     NodeType = "UnboundParameter"
	NodePredicateCall        NodeType = "PredicateCall"
	NodeLogicParenthesized   NodeType = "LogicParenthesized"
	NodeLogicNot             NodeType = "LogicNot"
	NodeLogicBinary          NodeType = "LogicBinary"
	NodeBoolQuery            NodeType = "BoolQuery"
	NodeBuiltinDeclaration   NodeType = "BuiltinDeclaration"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Declaration is any node that introduces a name into a scope.
type Declaration interface {
	Node
	DeclaredName() string
	declarationNode()
}

type declarationMarker struct{}

func (declarationMarker) declarationNode() {}

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

// Root and blocks

type Root struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewRoot(statements []Statement) *Root {
	return &Root{nodeImpl: newNodeImpl(NodeRoot), Statements: statements}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Declarations

type VarDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Name        string         `json:"name"`
	Type        TypeExpression `json:"varType"`
	Initializer Expression     `json:"initializer"`
}

func NewVarDeclaration(name string, typ TypeExpression, initializer Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Type: typ, Initializer: initializer}
}

func (d *VarDeclaration) DeclaredName() string { return d.Name }

type Parameter struct {
	nodeImpl
	declarationMarker

	Name string         `json:"name"`
	Type TypeExpression `json:"paramType"`
}

func NewParameter(name string, typ TypeExpression) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: typ}
}

func (p *Parameter) DeclaredName() string { return p.Name }

type FunctionDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Name       string         `json:"name"`
	Parameters []*Parameter   `json:"parameters"`
	ReturnType TypeExpression `json:"returnType,omitempty"`
	Body       *Block         `json:"body"`
}

func NewFunctionDeclaration(name string, params []*Parameter, returnType TypeExpression, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{
		nodeImpl:   newNodeImpl(NodeFunctionDeclaration),
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Body:       body,
	}
}

func (d *FunctionDeclaration) DeclaredName() string { return d.Name }

type FieldDeclaration struct {
	nodeImpl
	declarationMarker

	Name string         `json:"name"`
	Type TypeExpression `json:"fieldType"`
}

func NewFieldDeclaration(name string, typ TypeExpression) *FieldDeclaration {
	return &FieldDeclaration{nodeImpl: newNodeImpl(NodeFieldDeclaration), Name: name, Type: typ}
}

func (d *FieldDeclaration) DeclaredName() string { return d.Name }

type StructDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Name   string              `json:"name"`
	Fields []*FieldDeclaration `json:"fields"`
}

func NewStructDeclaration(name string, fields []*FieldDeclaration) *StructDeclaration {
	return &StructDeclaration{nodeImpl: newNodeImpl(NodeStructDeclaration), Name: name, Fields: fields}
}

func (d *StructDeclaration) DeclaredName() string { return d.Name }

// FieldIndex returns the position of the named field, or -1.
func (d *StructDeclaration) FieldIndex(name string) int {
	for idx, field := range d.Fields {
		if field.Name == name {
			return idx
		}
	}
	return -1
}

// BuiltinKind distinguishes the declarations the root scope is seeded with.
type BuiltinKind string

const (
	BuiltinType     BuiltinKind = "type"
	BuiltinFunction BuiltinKind = "function"
)

// BuiltinDeclaration is a synthetic declaration for names that exist before
// any user code runs (type names and the print function).
type BuiltinDeclaration struct {
	nodeImpl
	declarationMarker

	Name string      `json:"name"`
	Kind BuiltinKind `json:"kind"`
}

func NewBuiltinDeclaration(name string, kind BuiltinKind) *BuiltinDeclaration {
	return &BuiltinDeclaration{nodeImpl: newNodeImpl(NodeBuiltinDeclaration), Name: name, Kind: kind}
}

func (d *BuiltinDeclaration) DeclaredName() string { return d.Name }

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then Statement, otherwise Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: otherwise}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression,omitempty"`
}

func NewReturnStatement(expr Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Expression: expr}
}

// Literals

type IntLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BoolLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBoolLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

// References

type Reference struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewReference(name string) *Reference {
	return &Reference{nodeImpl: newNodeImpl(NodeReference), Name: name}
}

// Constructor is the `$Name` reference to a struct's constructor.
type Constructor struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewConstructor(name string) *Constructor {
	return &Constructor{nodeImpl: newNodeImpl(NodeConstructor), Name: name}
}

// Compound expressions

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

type FieldAccess struct {
	nodeImpl
	expressionMarker

	Stem  Expression `json:"stem"`
	Field string     `json:"field"`
}

func NewFieldAccess(stem Expression, field string) *FieldAccess {
	return &FieldAccess{nodeImpl: newNodeImpl(NodeFieldAccess), Stem: stem, Field: field}
}

type ArrayAccess struct {
	nodeImpl
	expressionMarker

	Array Expression `json:"array"`
	Index Expression `json:"index"`
}

func NewArrayAccess(array Expression, index Expression) *ArrayAccess {
	return &ArrayAccess{nodeImpl: newNodeImpl(NodeArrayAccess), Array: array, Index: index}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type UnaryOperator string

const (
	UnaryNot UnaryOperator = "!"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(op UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: op, Operand: operand}
}

type BinaryOperator string

const (
	OpAdd      BinaryOperator = "+"
	OpSubtract BinaryOperator = "-"
	OpMultiply BinaryOperator = "*"
	OpDivide   BinaryOperator = "/"
	OpRemain   BinaryOperator = "%"
	OpEqual    BinaryOperator = "=="
	OpNotEqual BinaryOperator = "!="
	OpLess     BinaryOperator = "<"
	OpLessEq   BinaryOperator = "<="
	OpGreater  BinaryOperator = ">"
	OpGreatEq  BinaryOperator = ">="
	OpAnd      BinaryOperator = "&&"
	OpOr       BinaryOperator = "||"
)

// IsArithmetic reports whether op is one of + - * / %.
func (op BinaryOperator) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpRemain:
		return true
	}
	return false
}

// IsComparison reports whether op is an ordering comparison.
func (op BinaryOperator) IsComparison() bool {
	switch op {
	case OpLess, OpLessEq, OpGreater, OpGreatEq:
		return true
	}
	return false
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(op BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: op, Left: left, Right: right}
}

type Assignment struct {
	nodeImpl
	expressionMarker

	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignment(left, right Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Left: left, Right: right}
}

type Parenthesized struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewParenthesized(expr Expression) *Parenthesized {
	return &Parenthesized{nodeImpl: newNodeImpl(NodeParenthesized), Expression: expr}
}

// Type expressions

type SimpleType struct {
	nodeImpl
	typeExpressionMarker

	Name string `json:"name"`
}

func NewSimpleType(name string) *SimpleType {
	return &SimpleType{nodeImpl: newNodeImpl(NodeSimpleType), Name: name}
}

type ArrayType struct {
	nodeImpl
	typeExpressionMarker

	Element TypeExpression `json:"element"`
}

func NewArrayType(element TypeExpression) *ArrayType {
	return &ArrayType{nodeImpl: newNodeImpl(NodeArrayType), Element: element}
}
