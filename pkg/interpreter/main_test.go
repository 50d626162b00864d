package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// runProgram analyzes and runs the statements, capturing print output.
func runProgram(t *testing.T, opts []Option, stmts ...ast.Statement) (Result, string, error) {
	t.Helper()
	root := ast.Prog(stmts...)
	table, err := semantic.Analyze(root)
	require.NoError(t, err)
	var out bytes.Buffer
	interp := New(table, append([]Option{WithStdout(&out)}, opts...)...)
	res, err := interp.Run(root)
	return res, out.String(), err
}

// mustReturn runs the program and returns the value of its top-level return.
func mustReturn(t *testing.T, stmts ...ast.Statement) runtime.Value {
	t.Helper()
	res, _, err := runProgram(t, nil, stmts...)
	require.NoError(t, err)
	require.True(t, res.Returned, "program did not return")
	return res.Value
}

// mustOutput runs the program and returns what it printed.
func mustOutput(t *testing.T, stmts ...ast.Statement) string {
	t.Helper()
	_, out, err := runProgram(t, nil, stmts...)
	require.NoError(t, err)
	return out
}

func requireFault(t *testing.T, err error, kind runtime.FaultKind) *runtime.Fault {
	t.Helper()
	require.Error(t, err)
	fault, ok := runtime.AsFault(err)
	require.True(t, ok, "expected a fault, got %v", err)
	require.Equal(t, kind, fault.Kind, "unexpected fault: %v", err)
	return fault
}

func faultOf(t *testing.T, stmts ...ast.Statement) error {
	t.Helper()
	_, _, err := runProgram(t, nil, stmts...)
	return err
}
