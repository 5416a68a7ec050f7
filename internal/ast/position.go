package ast

import "fmt"

// Position tracks a source location for diagnostics, mirroring the scanner's
// own line/column/offset bookkeeping.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
