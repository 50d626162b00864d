package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicExpressionIsSealed(t *testing.T) {
	forms := []LogicExpression{
		Atom("poodle"),
		Pred("dog", Int(1)),
		LParen(Atom("a")),
		LNot(Atom("a")),
		And(Atom("a"), Pred("b")),
	}
	for _, form := range forms {
		var expr Expression = form
		_, ok := expr.(LogicExpression)
		assert.True(t, ok, "%s should be a logic expression", form.NodeType())
	}

	var plain Expression = Bin("&&", Bool(true), Bool(false))
	_, ok := plain.(LogicExpression)
	assert.False(t, ok)
}

func TestDeclarationsExposeNames(t *testing.T) {
	decls := map[string]Declaration{
		"x":     Var("x", Ty("Int"), Int(1)),
		"f":     Fn("f", nil, nil),
		"Point": Struct("Point", FieldDecl("x", Ty("Int"))),
		"dog":   Fact("dog", Int(1)),
		"cat":   Rule("cat", nil, Atom("a")),
		"a":     Unbound("a", Ty("Int")),
		"ready": AtomDecl("ready"),
	}
	for name, decl := range decls {
		assert.Equal(t, name, decl.DeclaredName())
	}
}

func TestSetSpan(t *testing.T) {
	ref := WithSpan(Ref("x"), At(3, 7))
	assert.Equal(t, Position{Line: 3, Column: 7}, ref.Span().Start)

	SetSpan(nil, At(1, 1))
}

func TestStructFieldIndex(t *testing.T) {
	decl := Struct("P", FieldDecl("x", Ty("Int")), FieldDecl("y", Ty("Float")))
	assert.Equal(t, 1, decl.FieldIndex("y"))
	assert.Equal(t, -1, decl.FieldIndex("z"))
}
