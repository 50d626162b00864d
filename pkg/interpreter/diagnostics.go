package interpreter

import (
	"fmt"
	"strings"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
)

// attachNode records node on a fault that does not know where it was raised
// yet, and turns any other error into an EvaluationFault at node.
func attachNode(err error, node ast.Node) error {
	if err == nil || node == nil {
		return err
	}
	if fault, ok := runtime.AsFault(err); ok {
		if fault.Node == nil {
			fault.Node = node
		}
		return err
	}
	return runtime.WrapFault(err, node)
}

// DescribeFault renders an error for the command line, with the location of
// the offending node when it has one.
func DescribeFault(err error) string {
	if err == nil {
		return ""
	}
	fault, ok := runtime.AsFault(err)
	if !ok {
		return "runtime: " + strings.TrimSpace(err.Error())
	}
	message := fault.Error()
	if fault.Node == nil {
		return "runtime: " + message
	}
	span := fault.Node.Span()
	if span == (ast.Span{}) {
		return fmt.Sprintf("runtime: %s %s", fault.Node.NodeType(), message)
	}
	return fmt.Sprintf("runtime: line %d, column %d %s", span.Start.Line, span.Start.Column, message)
}
