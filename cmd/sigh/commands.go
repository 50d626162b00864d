package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/driver"
	"sigh/interpreter-go/pkg/interpreter"
	"sigh/interpreter-go/pkg/logic"
	"sigh/interpreter-go/pkg/runtime"
	"sigh/interpreter-go/pkg/semantic"
)

// loadProgram decodes and analyzes the program named by args or the manifest.
func (c *cli) loadProgram(args []string) (string, *ast.Root, *semantic.Table, error) {
	path, err := c.programPath(args)
	if err != nil {
		return "", nil, nil, err
	}
	root, err := driver.LoadProgram(path)
	if err != nil {
		return path, nil, nil, err
	}
	table, err := semantic.Analyze(root)
	if err != nil {
		return path, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	c.logger.Debug("program analyzed", zap.String("path", path), zap.Int("statements", len(root.Statements)))
	return path, root, table, nil
}

func (c *cli) execute(args []string) (interpreter.Result, error) {
	path, root, table, err := c.loadProgram(args)
	if err != nil {
		return interpreter.Result{}, err
	}
	interp := interpreter.New(table,
		interpreter.WithStdout(c.stdout),
		interpreter.WithLogger(c.logger),
		interpreter.WithMaxResolutionDepth(c.manifest.Resolution.MaxDepth),
	)
	c.logger.Info("running program", zap.String("path", path))
	return interp.Run(root)
}

func (c *cli) runProgram(cmd *cobra.Command, args []string) error {
	res, err := c.execute(args)
	if err != nil {
		return err
	}
	if res.Returned && (c.printResult || c.manifest.Output.PrintResult) {
		fmt.Fprintln(c.stdout, runtime.DisplayString(res.Value))
	}
	return nil
}

func (c *cli) checkProgram(cmd *cobra.Command, args []string) error {
	path, root, _, err := c.loadProgram(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "ok: %s (%d statements)\n", path, len(root.Statements))
	return nil
}

func (c *cli) dumpFacts(cmd *cobra.Command, args []string) error {
	res, err := c.execute(args)
	if err != nil {
		return err
	}
	store, stats := logic.ExportFacts(res.Root)
	lines, err := logic.Lines(store)
	if err != nil {
		return fmt.Errorf("facts: %w", err)
	}
	for _, line := range lines {
		fmt.Fprintln(c.stdout, line)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(c.stdout, "%% skipped %d facts with no Datalog form\n", stats.Skipped)
	}
	c.logger.Debug("facts exported", zap.Int("exported", stats.Exported), zap.Int("skipped", stats.Skipped))
	return nil
}
