package source

import (
	"path/filepath"
	"strings"
)

// Extension is the file extension of Quest source files.
const Extension = ".qst"

// SourceFile is one unit of Quest source text together with where it came from.
type SourceFile struct {
	Name    string // Display name (e.g., "hello.qst", "<repl>")
	Path    string // Full file path (empty for REPL/stdin input)
	Content string
	lines   []string // Cached split lines
}

func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewReplSource wraps one line (or block) typed at the REPL.
func NewReplSource(content string) *SourceFile {
	return &SourceFile{Name: "<repl>", Content: content}
}

// NewStdinSource wraps a program piped on stdin.
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{Name: "<stdin>", Content: content}
}

// FromFile creates a SourceFile from a file path and its content.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line n, or "" when out of range.
func (sf *SourceFile) Line(n int) string {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// BaseName is the file name without directory and without the Quest extension.
// Non-file sources are called "generated".
func (sf *SourceFile) BaseName() string {
	if sf.Path == "" {
		return "generated"
	}
	return strings.TrimSuffix(filepath.Base(sf.Path), Extension)
}

func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
