package nexus

import "fmt"

// Category classifies a diagnostic by the pass that produced it. The string
// values are the report names.
type Category string

const (
	CategoryLex      Category = "SCANNER"
	CategoryParse    Category = "PARSER"
	CategorySemantic Category = "SEMANTIC"
)

// Diagnostic is a non-fatal finding with a source position. Diagnostics are
// accumulated during a pass and surfaced after it completes; they never
// carry control flow.
type Diagnostic struct {
	Category Category
	Message  string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("ERROR(%s): %s at line %d, column %d", d.Category, d.Message, d.Line, d.Column)
}
