package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"questc/pkg/driver"
	"questc/pkg/source"
)

func (a *app) newCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file | ->",
		Short: "Run the pipeline on one file up to a stage and print the result",
		Long: "Run the pipeline on one file and print the artifact of the requested stage.\n" +
			"Stages: " + driver.StageNames() + ". Use - to read the program from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compile(args[0], cmd.InOrStdin())
		},
	}
	flags := cmd.Flags()
	flags.StringP(driver.KeyStage, "s", "", "stage to stop after: "+driver.StageNames())
	flags.StringP(driver.KeyFormat, "f", "", "tree format for analyzed and optimized stages: tree or raw")
	mustBindPFlag(a.v, driver.KeyStage, flags)
	mustBindPFlag(a.v, driver.KeyFormat, flags)
	return cmd
}

func (a *app) compile(path string, stdin io.Reader) error {
	src, err := a.readSource(path, stdin)
	if err != nil {
		return a.report(err)
	}

	artifact, err := driver.Compile(src, a.config.Stage, a.options())
	if err != nil {
		return a.report(err)
	}

	if w, ok := artifact.(*driver.Written); ok {
		fmt.Fprintf(a.stdout, "%s (%s)\n", w, humanize.Bytes(uint64(w.Size)))
		return nil
	}
	fmt.Fprintln(a.stdout, artifact)
	return nil
}

func (a *app) readSource(path string, stdin io.Reader) (*source.SourceFile, error) {
	if path != "-" {
		return driver.ReadSource(a.fs, path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "read stdin")
	}
	return source.NewStdinSource(string(data)), nil
}
