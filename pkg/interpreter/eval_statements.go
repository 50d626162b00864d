package interpreter

import (
	"fmt"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
)

// completion is the result of evaluating a statement. A pending return is
// carried outward until a call boundary or the root consumes it.
type completion struct {
	value     runtime.Value
	returning bool
}

var normal = completion{}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	c, err := i.statement(node, env)
	if err != nil {
		return normal, attachNode(err, node)
	}
	return c, nil
}

func (i *Interpreter) statement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normal, err
	case *ast.VarDeclaration:
		return normal, i.evaluateVarDeclaration(n, env)
	case *ast.FunctionDeclaration:
		return normal, i.declareValue(n, n.Name, runtime.FunctionValue{Decl: n}, env)
	case *ast.StructDeclaration:
		return normal, i.declareValue(n, n.Name, runtime.TypeValue{Name: n.Name, Decl: n}, env)
	case *ast.IfStatement:
		return i.evaluateIf(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhile(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturn(n, env)
	case *ast.AtomDeclaration:
		return normal, i.resolver.DeclareAtom(n, env)
	case *ast.FactDeclaration:
		return normal, i.resolver.DeclareFact(n, env)
	case *ast.RuleDeclaration:
		return normal, i.resolver.DeclareRule(n, env)
	case *ast.Unification:
		return normal, i.resolver.Unify(n, env)
	default:
		return normal, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// evaluateBlock runs the block in a new frame chained to env.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (completion, error) {
	scope, err := i.scopeOf(block)
	if err != nil {
		return normal, err
	}
	return i.evaluateBlockIn(block, runtime.NewEnvironment(scope, env))
}

// evaluateBlockIn runs the block's statements in an existing frame.
func (i *Interpreter) evaluateBlockIn(block *ast.Block, frame *runtime.Environment) (completion, error) {
	for _, stmt := range block.Statements {
		c, err := i.evaluateStatement(stmt, frame)
		if err != nil || c.returning {
			return c, err
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateVarDeclaration(decl *ast.VarDeclaration, env *runtime.Environment) error {
	var value runtime.Value = runtime.Null
	if decl.Initializer != nil {
		val, err := i.evaluateExpression(decl.Initializer, env)
		if err != nil {
			return err
		}
		value = val
	}
	if value.Kind() == runtime.KindVoid {
		return runtime.NewFault(runtime.TypeMismatch, "%s initialized with a call that returned no value", decl.Name)
	}
	scope, err := i.scopeOf(decl)
	if err != nil {
		return err
	}
	return env.Write(scope, decl.Name, value, i.typeOf(decl))
}

func (i *Interpreter) declareValue(decl ast.Declaration, name string, value runtime.Value, env *runtime.Environment) error {
	scope, err := i.scopeOf(decl)
	if err != nil {
		return err
	}
	return env.Write(scope, name, value, nil)
}

func (i *Interpreter) evaluateIf(stmt *ast.IfStatement, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateCondition(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if cond {
		return i.evaluateStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, env)
	}
	return normal, nil
}

// evaluateWhile allocates the body block's frame once; every iteration runs
// in that same frame, so a declaration in the body overwrites the previous
// iteration's binding.
func (i *Interpreter) evaluateWhile(loop *ast.WhileStatement, env *runtime.Environment) (completion, error) {
	var frame *runtime.Environment
	block, isBlock := loop.Body.(*ast.Block)
	if isBlock {
		scope, err := i.scopeOf(block)
		if err != nil {
			return normal, err
		}
		frame = runtime.NewEnvironment(scope, env)
	}
	for {
		cond, err := i.evaluateCondition(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}
		var c completion
		if isBlock {
			c, err = i.evaluateBlockIn(block, frame)
			if err != nil {
				err = attachNode(err, block)
			}
		} else {
			c, err = i.evaluateStatement(loop.Body, env)
		}
		if err != nil || c.returning {
			return c, err
		}
	}
}

func (i *Interpreter) evaluateReturn(stmt *ast.ReturnStatement, env *runtime.Environment) (completion, error) {
	if stmt.Expression == nil {
		return completion{value: runtime.Void, returning: true}, nil
	}
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return normal, err
	}
	return completion{value: val, returning: true}, nil
}

func (i *Interpreter) evaluateCondition(expr ast.Expression, env *runtime.Environment) (bool, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, &runtime.Fault{
			Kind:    runtime.TypeMismatch,
			Message: "condition must be a Bool, got " + val.Kind().String(),
			Node:    expr,
		}
	}
	return b.Val, nil
}
