package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sigh/interpreter-go/pkg/driver"
	"sigh/interpreter-go/pkg/interpreter"
	"sigh/interpreter-go/pkg/runtime"
)

const cliToolVersion = "sigh 0.1.0-dev"

var errNoProgram = errors.New("no program given and the manifest has no entry")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if _, ok := runtime.AsFault(err); ok {
			fmt.Fprintln(stderr, interpreter.DescribeFault(err))
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

// cli carries the flags and the per-invocation state shared by the commands.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	verbose     bool
	configPath  string
	printResult bool

	manifest *driver.Manifest
	logger   *zap.Logger
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sigh",
		Short: "Evaluate Sigh programs and their logic facts",
		Long: `sigh runs programs written as Sigh syntax trees (YAML or JSON documents).

Programs mix ordinary imperative code with a logic sublanguage: atoms, facts,
rules, unification and boolean queries. Settings are read from sigh.yml.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to sigh.yml (default: search upward from the current directory)")

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runProgram,
	}
	runCmd.Flags().BoolVar(&c.printResult, "print-result", false, "Print the value of a top-level return")

	root.AddCommand(
		runCmd,
		&cobra.Command{
			Use:   "check [file]",
			Short: "Load and analyze a program without running it",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.checkProgram,
		},
		&cobra.Command{
			Use:   "facts [file]",
			Short: "Run a program and print its root facts as Datalog",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.dumpFacts,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the CLI version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(c.stdout, cliToolVersion)
			},
		},
	)
	return root
}

// setup loads the manifest and builds the logger before any command runs.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	manifest, err := c.loadManifest()
	if err != nil {
		return err
	}
	c.manifest = manifest
	logger, err := newLogger(manifest.Log, c.verbose, c.stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	if manifest.Path != "" {
		c.logger.Debug("manifest loaded", zap.String("path", manifest.Path), zap.String("name", manifest.Name))
	}
	return nil
}

func (c *cli) loadManifest() (*driver.Manifest, error) {
	if c.configPath != "" {
		return driver.LoadManifest(c.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve working directory: %w", err)
	}
	path, err := driver.FindManifest(wd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return driver.DefaultManifest(), nil
	}
	return driver.LoadManifest(path)
}

// programPath picks the explicit file argument over the manifest entry.
func (c *cli) programPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if entry := c.manifest.EntryPath(); entry != "" {
		return entry, nil
	}
	return "", errNoProgram
}
