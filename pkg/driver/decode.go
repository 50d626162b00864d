package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sigh/interpreter-go/pkg/ast"
)

// LoadProgram reads a program file holding the syntax tree as a YAML or JSON
// document. Files ending in .json are decoded as JSON, everything else as YAML.
func LoadProgram(path string) (*ast.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("program: parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("program: parse %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("program: %s is empty", path)
	}
	root, err := DecodeProgram(raw)
	if err != nil {
		return nil, fmt.Errorf("program: decode %s: %w", path, err)
	}
	return root, nil
}

// DecodeProgram builds a tree from its generic document form. Every node is a
// mapping with a "type" discriminator; a node may carry "span": {line, column}.
func DecodeProgram(raw map[string]any) (*ast.Root, error) {
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	root, ok := node.(*ast.Root)
	if !ok {
		return nil, fmt.Errorf("document root is %s, want Root", node.NodeType())
	}
	return root, nil
}

func decodeNode(node map[string]any) (ast.Node, error) {
	decoded, err := decodeNodeBody(node)
	if err != nil {
		return nil, err
	}
	if span, ok := node["span"].(map[string]any); ok {
		line, err := intField(span, "line")
		if err != nil {
			return nil, err
		}
		column, err := intField(span, "column")
		if err != nil {
			return nil, err
		}
		ast.SetSpan(decoded, ast.At(int(line), int(column)))
	}
	return decoded, nil
}

func decodeNodeBody(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch typ {
	case "Root":
		stmts, err := decodeStatements(node["statements"])
		if err != nil {
			return nil, err
		}
		return ast.NewRoot(stmts), nil
	case "Block":
		return decodeBlockBody(node)
	case "ExpressionStatement":
		expr, err := expressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case "VarDeclaration":
		typ, err := optionalTypeField(node, "annotation")
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if node["initializer"] != nil {
			if init, err = expressionField(node, "initializer"); err != nil {
				return nil, err
			}
		}
		return ast.NewVarDeclaration(stringField(node, "name"), typ, init), nil
	case "Parameter":
		return decodeParameter(node)
	case "FunctionDeclaration":
		params, err := decodeParameters(node["parameters"])
		if err != nil {
			return nil, err
		}
		ret, err := optionalTypeField(node, "returnType")
		if err != nil {
			return nil, err
		}
		body, err := blockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDeclaration(stringField(node, "name"), params, ret, body), nil
	case "FieldDeclaration":
		return decodeField(node)
	case "StructDeclaration":
		rawFields, _ := node["fields"].([]any)
		fields := make([]*ast.FieldDeclaration, 0, len(rawFields))
		for _, raw := range rawFields {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid struct field %T", raw)
			}
			field, err := decodeField(child)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return ast.NewStructDeclaration(stringField(node, "name"), fields), nil
	case "IfStatement":
		cond, err := expressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := statementField(node, "then")
		if err != nil {
			return nil, err
		}
		var otherwise ast.Statement
		if node["else"] != nil {
			if otherwise, err = statementField(node, "else"); err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(cond, then, otherwise), nil
	case "WhileStatement":
		cond, err := expressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := statementField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(cond, body), nil
	case "ReturnStatement":
		var expr ast.Expression
		if node["expression"] != nil {
			var err error
			if expr, err = expressionField(node, "expression"); err != nil {
				return nil, err
			}
		}
		return ast.NewReturnStatement(expr), nil
	case "IntLiteral":
		val, err := intField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewIntLiteral(val), nil
	case "FloatLiteral":
		val, err := floatField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewFloatLiteral(val), nil
	case "StringLiteral":
		return ast.NewStringLiteral(stringField(node, "value")), nil
	case "BoolLiteral":
		val, _ := node["value"].(bool)
		return ast.NewBoolLiteral(val), nil
	case "NullLiteral":
		return ast.NewNullLiteral(), nil
	case "Reference":
		return ast.NewReference(stringField(node, "name")), nil
	case "Constructor":
		return ast.NewConstructor(stringField(node, "name")), nil
	case "ArrayLiteral":
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewArrayLiteral(elements), nil
	case "FieldAccess":
		stem, err := expressionField(node, "stem")
		if err != nil {
			return nil, err
		}
		return ast.NewFieldAccess(stem, stringField(node, "field")), nil
	case "ArrayAccess":
		array, err := expressionField(node, "array")
		if err != nil {
			return nil, err
		}
		index, err := expressionField(node, "index")
		if err != nil {
			return nil, err
		}
		return ast.NewArrayAccess(array, index), nil
	case "FunctionCall":
		callee, err := expressionField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(callee, args), nil
	case "UnaryExpression":
		operand, err := expressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		op := ast.UnaryOperator(stringField(node, "operator"))
		if op != ast.UnaryNot {
			return nil, fmt.Errorf("unsupported unary operator %q", op)
		}
		return ast.NewUnaryExpression(op, operand), nil
	case "BinaryExpression":
		left, right, err := operandsField(node)
		if err != nil {
			return nil, err
		}
		op := ast.BinaryOperator(stringField(node, "operator"))
		if !validBinaryOperator(op) {
			return nil, fmt.Errorf("unsupported binary operator %q", op)
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case "Assignment":
		left, right, err := operandsField(node)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(left, right), nil
	case "Parenthesized":
		expr, err := expressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewParenthesized(expr), nil
	case "SimpleType":
		return ast.NewSimpleType(stringField(node, "name")), nil
	case "ArrayType":
		element, err := typeField(node, "element")
		if err != nil {
			return nil, err
		}
		return ast.NewArrayType(element), nil
	case "AtomLiteral":
		return ast.NewAtomLiteral(stringField(node, "name")), nil
	case "AtomDeclaration":
		return ast.NewAtomDeclaration(stringField(node, "name")), nil
	case "FactDeclaration":
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewFactDeclaration(stringField(node, "functor"), args), nil
	case "RuleDeclaration":
		params, err := decodeParameters(node["parameters"])
		if err != nil {
			return nil, err
		}
		body, err := logicField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewRuleDeclaration(stringField(node, "functor"), params, body), nil
	case "PredicateCall":
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewPredicateCall(stringField(node, "functor"), args), nil
	case "Unification":
		left, err := predicateField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := predicateField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewUnification(left, right), nil
	case "UnboundParameter":
		typ, err := typeField(node, "annotation")
		if err != nil {
			return nil, err
		}
		return ast.NewUnboundParameter(stringField(node, "name"), typ), nil
	case "LogicParenthesized":
		expr, err := logicField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewLogicParenthesized(expr), nil
	case "LogicNot":
		operand, err := logicField(node, "operand")
		if err != nil {
			return nil, err
		}
		return ast.NewLogicNot(operand), nil
	case "LogicBinary":
		left, err := logicField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := logicField(node, "right")
		if err != nil {
			return nil, err
		}
		op := ast.LogicOperator(stringField(node, "operator"))
		if op != ast.LogicAnd && op != ast.LogicOr {
			return nil, fmt.Errorf("unsupported logic operator %q", op)
		}
		return ast.NewLogicBinary(op, left, right), nil
	case "BoolQuery":
		target, err := referenceField(node, "target")
		if err != nil {
			return nil, err
		}
		query, err := expressionField(node, "query")
		if err != nil {
			return nil, err
		}
		return ast.NewBoolQuery(target, query), nil
	case "":
		return nil, fmt.Errorf("node missing type discriminator")
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func validBinaryOperator(op ast.BinaryOperator) bool {
	if op.IsArithmetic() || op.IsComparison() {
		return true
	}
	switch op {
	case ast.OpEqual, ast.OpNotEqual, ast.OpAnd, ast.OpOr:
		return true
	}
	return false
}

func childNode(node map[string]any, key string) (ast.Node, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: missing or invalid %q", stringField(node, "type"), key)
	}
	return decodeNode(raw)
}

func expressionField(node map[string]any, key string) (ast.Expression, error) {
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not an expression", stringField(node, "type"), key, child.NodeType())
	}
	return expr, nil
}

func operandsField(node map[string]any) (ast.Expression, ast.Expression, error) {
	left, err := expressionField(node, "left")
	if err != nil {
		return nil, nil, err
	}
	right, err := expressionField(node, "right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func statementField(node map[string]any, key string) (ast.Statement, error) {
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	stmt, ok := child.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a statement", stringField(node, "type"), key, child.NodeType())
	}
	return stmt, nil
}

func blockField(node map[string]any, key string) (*ast.Block, error) {
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	block, ok := child.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a Block", stringField(node, "type"), key, child.NodeType())
	}
	return block, nil
}

func logicField(node map[string]any, key string) (ast.LogicExpression, error) {
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(ast.LogicExpression)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a logic expression", stringField(node, "type"), key, child.NodeType())
	}
	return expr, nil
}

func predicateField(node map[string]any, key string) (*ast.PredicateCall, error) {
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	call, ok := child.(*ast.PredicateCall)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a PredicateCall", stringField(node, "type"), key, child.NodeType())
	}
	return call, nil
}

// referenceField accepts either a Reference node or a bare name.
func referenceField(node map[string]any, key string) (*ast.Reference, error) {
	if name, ok := node[key].(string); ok {
		return ast.NewReference(name), nil
	}
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	ref, ok := child.(*ast.Reference)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a Reference", stringField(node, "type"), key, child.NodeType())
	}
	return ref, nil
}

// typeField accepts a type node or a bare type name.
func typeField(node map[string]any, key string) (ast.TypeExpression, error) {
	if name, ok := node[key].(string); ok {
		return ast.NewSimpleType(name), nil
	}
	child, err := childNode(node, key)
	if err != nil {
		return nil, err
	}
	typ, ok := child.(ast.TypeExpression)
	if !ok {
		return nil, fmt.Errorf("%s: %q is %s, not a type", stringField(node, "type"), key, child.NodeType())
	}
	return typ, nil
}

func optionalTypeField(node map[string]any, key string) (ast.TypeExpression, error) {
	if node[key] == nil {
		return nil, nil
	}
	return typeField(node, key)
}

func decodeBlockBody(node map[string]any) (*ast.Block, error) {
	stmts, err := decodeStatements(node["statements"])
	if err != nil {
		return nil, err
	}
	return ast.NewBlock(stmts), nil
}

func decodeParameter(node map[string]any) (*ast.Parameter, error) {
	typ, err := typeField(node, "annotation")
	if err != nil {
		return nil, err
	}
	param := ast.NewParameter(stringField(node, "name"), typ)
	return param, nil
}

func decodeParameters(raw any) ([]*ast.Parameter, error) {
	list, _ := raw.([]any)
	params := make([]*ast.Parameter, 0, len(list))
	for _, entry := range list {
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %T", entry)
		}
		node, err := decodeNode(withType(child, "Parameter"))
		if err != nil {
			return nil, err
		}
		param, ok := node.(*ast.Parameter)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %s", node.NodeType())
		}
		params = append(params, param)
	}
	return params, nil
}

func decodeField(node map[string]any) (*ast.FieldDeclaration, error) {
	typ, err := typeField(node, "annotation")
	if err != nil {
		return nil, err
	}
	field := ast.NewFieldDeclaration(stringField(node, "name"), typ)
	if span, ok := node["span"].(map[string]any); ok {
		line, lerr := intField(span, "line")
		column, cerr := intField(span, "column")
		if lerr == nil && cerr == nil {
			ast.SetSpan(field, ast.At(int(line), int(column)))
		}
	}
	return field, nil
}

// withType fills in the discriminator for list entries whose kind is implied
// by their position.
func withType(node map[string]any, typ string) map[string]any {
	if _, ok := node["type"]; ok {
		return node
	}
	out := make(map[string]any, len(node)+1)
	for k, v := range node {
		out[k] = v
	}
	out["type"] = typ
	return out
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	list, _ := raw.([]any)
	stmts := make([]ast.Statement, 0, len(list))
	for _, entry := range list {
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement entry %T", entry)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("%s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpressions(raw any) ([]ast.Expression, error) {
	list, _ := raw.([]any)
	exprs := make([]ast.Expression, 0, len(list))
	for _, entry := range list {
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid expression entry %T", entry)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		expr, ok := node.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("%s is not an expression", node.NodeType())
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func stringField(node map[string]any, key string) string {
	val, _ := node[key].(string)
	return val
}

func intField(node map[string]any, key string) (int64, error) {
	switch v := node[key].(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%q value %d overflows Int", key, v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%q value %v is not an integer", key, v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("%q must be an integer, got %T", key, node[key])
	}
}

func floatField(node map[string]any, key string) (float64, error) {
	switch v := node[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("%q must be a number, got %T", key, node[key])
	}
}
