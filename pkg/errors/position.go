package errors

import (
	"fmt"

	"questc/pkg/source"
)

// Position is a location in Quest source. Line and Column are 1-based; the
// byte offsets are 0-based and EndPos is exclusive.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int
	Source   *source.SourceFile
}

// Locator renders the "Line L, col C:" prefix every diagnostic starts with.
func (p Position) Locator() string {
	return fmt.Sprintf("Line %d, col %d:", p.Line, p.Column)
}
