package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"questc/pkg/driver"
	"questc/pkg/parser"
	"questc/pkg/source"
)

const (
	historyFile = ".questc_history"
	promptMain  = "quest> "
	promptCont  = "...... "
)

func (a *app) newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Translate Quest statements to JavaScript interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.repl()
		},
	}
}

// repl compiles each entry on its own; nothing carries over between
// entries.
func (a *app) repl() error {
	fmt.Fprintln(a.stdout, "Quest to JavaScript (Ctrl+D to exit)")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		artifact, err := driver.Compile(source.NewReplSource(code), driver.StageJS, a.options())
		if err != nil {
			_ = a.report(err)
			continue
		}
		fmt.Fprintln(a.stdout, artifact)
	}
}

// readEntry reads lines until they parse, or fail for a reason other than
// running out of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func incomplete(code string) bool {
	_, errs := parser.Parse(source.NewReplSource(code))
	return len(errs) > 0 && strings.HasSuffix(errs[0].Message(), "before end of input")
}
