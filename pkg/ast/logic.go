package ast

// LogicExpression is the closed set of forms a rule body or boolean query can
// take: an atom, a predicate call, a parenthesized or negated logic expression,
// or a conjunction/disjunction of two logic expressions. The interface is
// sealed; only the node types in this file implement it.
type LogicExpression interface {
	Expression
	logicNode()
}

type logicMarker struct{}

func (logicMarker) logicNode() {}

type AtomLiteral struct {
	nodeImpl
	expressionMarker
	logicMarker

	Name string `json:"name"`
}

func NewAtomLiteral(name string) *AtomLiteral {
	return &AtomLiteral{nodeImpl: newNodeImpl(NodeAtomLiteral), Name: name}
}

// PredicateCall is `f(a1, ..., an)` used in a query, a rule body, or on
// either side of a unification.
type PredicateCall struct {
	nodeImpl
	expressionMarker
	logicMarker

	Functor   string       `json:"functor"`
	Arguments []Expression `json:"arguments"`
}

func NewPredicateCall(functor string, args []Expression) *PredicateCall {
	return &PredicateCall{nodeImpl: newNodeImpl(NodePredicateCall), Functor: functor, Arguments: args}
}

type LogicParenthesized struct {
	nodeImpl
	expressionMarker
	logicMarker

	Expression LogicExpression `json:"expression"`
}

func NewLogicParenthesized(expr LogicExpression) *LogicParenthesized {
	return &LogicParenthesized{nodeImpl: newNodeImpl(NodeLogicParenthesized), Expression: expr}
}

type LogicNot struct {
	nodeImpl
	expressionMarker
	logicMarker

	Operand LogicExpression `json:"operand"`
}

func NewLogicNot(operand LogicExpression) *LogicNot {
	return &LogicNot{nodeImpl: newNodeImpl(NodeLogicNot), Operand: operand}
}

type LogicOperator string

const (
	LogicAnd LogicOperator = "&&"
	LogicOr  LogicOperator = "||"
)

type LogicBinary struct {
	nodeImpl
	expressionMarker
	logicMarker

	Operator LogicOperator   `json:"operator"`
	Left     LogicExpression `json:"left"`
	Right    LogicExpression `json:"right"`
}

func NewLogicBinary(op LogicOperator, left, right LogicExpression) *LogicBinary {
	return &LogicBinary{nodeImpl: newNodeImpl(NodeLogicBinary), Operator: op, Left: left, Right: right}
}

// Logic declarations

// AtomDeclaration is `..name`.
type AtomDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Name string `json:"name"`
}

func NewAtomDeclaration(name string) *AtomDeclaration {
	return &AtomDeclaration{nodeImpl: newNodeImpl(NodeAtomDeclaration), Name: name}
}

func (d *AtomDeclaration) DeclaredName() string { return d.Name }

// FactDeclaration is `..f(e1, ..., en)`.
type FactDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Functor   string       `json:"functor"`
	Arguments []Expression `json:"arguments"`
}

func NewFactDeclaration(functor string, args []Expression) *FactDeclaration {
	return &FactDeclaration{nodeImpl: newNodeImpl(NodeFactDeclaration), Functor: functor, Arguments: args}
}

func (d *FactDeclaration) DeclaredName() string { return d.Functor }

// RuleDeclaration is `..f(p1: T1, ..., pn: Tn) :- body`.
type RuleDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Functor    string          `json:"functor"`
	Parameters []*Parameter    `json:"parameters"`
	Body       LogicExpression `json:"body"`
}

func NewRuleDeclaration(functor string, params []*Parameter, body LogicExpression) *RuleDeclaration {
	return &RuleDeclaration{nodeImpl: newNodeImpl(NodeRuleDeclaration), Functor: functor, Parameters: params, Body: body}
}

func (d *RuleDeclaration) DeclaredName() string { return d.Functor }

// Unification is `..left = right` between two predicate-shaped expressions.
type Unification struct {
	nodeImpl
	statementMarker

	Left  *PredicateCall `json:"left"`
	Right *PredicateCall `json:"right"`
}

func NewUnification(left, right *PredicateCall) *Unification {
	return &Unification{nodeImpl: newNodeImpl(NodeUnification), Left: left, Right: right}
}

// UnboundParameter is the `name: Type` placeholder a unification binds.
type UnboundParameter struct {
	nodeImpl
	expressionMarker
	declarationMarker

	Name string         `json:"name"`
	Type TypeExpression `json:"paramType"`
}

func NewUnboundParameter(name string, typ TypeExpression) *UnboundParameter {
	return &UnboundParameter{nodeImpl: newNodeImpl(NodeUnboundParameter), Name: name, Type: typ}
}

func (p *UnboundParameter) DeclaredName() string { return p.Name }

// BoolQuery is `target ?= expr`.
type BoolQuery struct {
	nodeImpl
	expressionMarker

	Target *Reference `json:"target"`
	Query  Expression `json:"query"`
}

func NewBoolQuery(target *Reference, query Expression) *BoolQuery {
	return &BoolQuery{nodeImpl: newNodeImpl(NodeBoolQuery), Target: target, Query: query}
}
