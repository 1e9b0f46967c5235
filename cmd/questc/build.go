package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"questc/pkg/driver"
)

func (a *app) newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <files...>",
		Short: "Generate JavaScript for several files in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build(cmd, args)
		},
	}
}

func (a *app) build(cmd *cobra.Command, paths []string) error {
	results, err := driver.Build(cmd.Context(), paths, a.options())

	var total uint64
	built := 0
	for _, r := range results {
		if r.Written == nil {
			continue
		}
		built++
		total += uint64(r.Written.Size)
		fmt.Fprintf(a.stdout, "%s -> %s (%s)\n", r.Path, r.Written.Path, humanize.Bytes(uint64(r.Written.Size)))
	}
	fmt.Fprintf(a.stdout, "Built %d of %d files, %s written\n", built, len(paths), humanize.Bytes(total))

	if err == nil {
		return nil
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		return a.report(err)
	}
	for _, e := range merr.Errors {
		a.report(e)
	}
	return &exitError{code: exitFailure}
}
