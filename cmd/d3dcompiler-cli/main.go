// SPDX-License-Identifier: Unlicense OR MIT

// Command d3dcompiler-cli compiles HLSL shaders with a d3dcompiler_NN.dll
// loaded at runtime and writes the bytecode as a C byte array.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"gioui.org/d3dcompiler/internal/d3dcompile"
	"gioui.org/d3dcompiler/internal/failure"
	"gioui.org/d3dcompiler/internal/request"
	"gioui.org/d3dcompiler/internal/textenc"
)

// tool is one invocation with its collaborators.
type tool struct {
	loader      d3dcompile.Loader
	stdout      io.Writer
	stderr      io.Writer
	commandLine string

	infoLog *log.Logger
	warnLog *log.Logger
	errLog  *log.Logger
}

func main() {
	textenc.UseUTF8Console()
	t := newTool(d3dcompile.SystemLoader, os.Stdout, os.Stderr, commandLine())
	os.Exit(t.run(os.Args[1:]))
}

func newTool(l d3dcompile.Loader, stdout, stderr io.Writer, cmdline string) *tool {
	return &tool{
		loader:      l,
		stdout:      stdout,
		stderr:      stderr,
		commandLine: cmdline,
		infoLog:     log.New(stderr, "INFO: ", 0),
		warnLog:     log.New(stderr, "WARNING: ", 0),
		errLog:      log.New(stderr, "ERROR: ", 0),
	}
}

// run executes the tool and returns the process exit status.
func (t *tool) run(args []string) int {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd := t.command()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.errLog.Print(err)
		if failure.Is(err, failure.ArgumentError) {
			fmt.Fprint(t.stderr, mainUsage)
		}
		return failure.KindOf(err).ExitCode()
	}
	return 0
}

func (t *tool) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "d3dcompiler-cli",
		Short:         "Command line frontend for the d3dcompiler dll",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := request.Register(cmd.Flags())
	// Defining help without a shorthand leaves -h to the header flag.
	cmd.Flags().Bool("help", false, "print this help")
	cmd.SetOut(t.stdout)
	cmd.SetErr(t.stderr)
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		fmt.Fprint(t.stderr, mainUsage)
	})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return request.FlagError(err)
	})
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		req, err := flags.Build(args)
		if err != nil {
			return err
		}
		for _, name := range flags.Repeated() {
			t.warnLog.Printf("Option %s given more than once, using the last value", name)
		}
		return t.compile(req)
	}
	return cmd
}
