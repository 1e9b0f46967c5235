// Package driver runs the Quest pipeline (parse, analyze, optimize,
// generate) up to a requested stage and hands back the stage's artifact.
package driver

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/checker"
	"questc/pkg/emitter"
	qerrors "questc/pkg/errors"
	"questc/pkg/optimizer"
	"questc/pkg/parser"
	"questc/pkg/source"
)

// Options carry the collaborators of a compilation.
type Options struct {
	Logger *zap.Logger
	// Fs receives generated files; defaults to the OS filesystem.
	Fs     afero.Fs
	OutDir string
	// Raw dumps trees with every field instead of the indented outline.
	Raw bool
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.OutDir == "" {
		o.OutDir = NewConfig().OutDir
	}
	return o
}

// OptionsFromConfig builds Options from a resolved Config.
func OptionsFromConfig(c Config, logger *zap.Logger, fs afero.Fs) Options {
	return Options{Logger: logger, Fs: fs, OutDir: c.OutDir, Raw: c.Format == FormatRaw}
}

// Artifact is what a stage produces. String renders it for the terminal.
type Artifact interface {
	fmt.Stringer
}

// SyntaxOK is the artifact of the parsed stage.
type SyntaxOK struct{}

func (SyntaxOK) String() string { return "Syntax is ok" }

// Tree is the typed AST produced by the analyzed and optimized stages.
type Tree struct {
	Program *ast.Program
	Raw     bool
}

func (t *Tree) String() string {
	if t.Raw {
		return ast.DumpRaw(t.Program)
	}
	return ast.Dump(t.Program)
}

// JavaScript is generated target code.
type JavaScript string

func (js JavaScript) String() string { return string(js) }

// Written reports a generated file.
type Written struct {
	Path string
	Size int
}

func (w *Written) String() string {
	return "Generated JavaScript code written to " + w.Path
}

// DiagnosticsError carries the syntax or semantic errors that stopped a
// compilation.
type DiagnosticsError struct {
	Source *source.SourceFile
	Errors []qerrors.QuestError
}

func (e *DiagnosticsError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return e.Source.DisplayPath() + ": " + strings.Join(msgs, "; ")
}

// Compile runs the pipeline on src up to stage. Each call uses its own
// checker, optimizer and emitter, so concurrent calls are independent.
func Compile(src *source.SourceFile, stage Stage, opts Options) (Artifact, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With(zap.String("source", src.DisplayPath()), zap.String("stage", string(stage)))

	if _, err := ParseStage(string(stage)); err != nil {
		return nil, err
	}

	start := time.Now()
	program, errs := parser.Parse(src)
	log.Debug("Parsed", zap.Duration("elapsed", time.Since(start)))
	if len(errs) > 0 {
		return nil, &DiagnosticsError{Source: src, Errors: errs}
	}
	if stage == StageParsed {
		return SyntaxOK{}, nil
	}

	start = time.Now()
	typed, errs := checker.NewChecker(checker.WithLogger(log)).Check(program)
	log.Debug("Analyzed", zap.Duration("elapsed", time.Since(start)))
	if len(errs) > 0 {
		return nil, &DiagnosticsError{Source: src, Errors: errs}
	}
	if stage == StageAnalyzed {
		return &Tree{Program: typed, Raw: opts.Raw}, nil
	}

	start = time.Now()
	typed = optimizer.New(optimizer.WithLogger(log)).Optimize(typed)
	log.Debug("Optimized", zap.Duration("elapsed", time.Since(start)))
	if stage == StageOptimized {
		return &Tree{Program: typed, Raw: opts.Raw}, nil
	}

	start = time.Now()
	js := emitter.New(emitter.WithLogger(log)).Emit(typed)
	log.Debug("Generated", zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(js)))
	if stage == StageJS {
		return JavaScript(js), nil
	}

	written, err := write(opts, src, js)
	if err != nil {
		return nil, err
	}
	return written, nil
}

// OutputPath is where the generate stage puts the code for src.
func OutputPath(outDir string, src *source.SourceFile) string {
	return filepath.Join(outDir, src.BaseName()+".js")
}

func write(opts Options, src *source.SourceFile, js string) (*Written, error) {
	path := OutputPath(opts.OutDir, src)
	if err := opts.Fs.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", opts.OutDir)
	}
	if err := afero.WriteFile(opts.Fs, path, []byte(js+"\n"), 0o644); err != nil {
		return nil, errors.Wrapf(err, "write %s", path)
	}
	opts.Logger.Debug("Wrote file", zap.String("path", path), zap.Int("bytes", len(js)+1))
	return &Written{Path: path, Size: len(js) + 1}, nil
}

// ReadSource loads a Quest file through fs.
func ReadSource(fs afero.Fs, path string) (*source.SourceFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return source.FromFile(path, string(data)), nil
}
