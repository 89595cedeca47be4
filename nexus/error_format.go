package nexus

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeFrame renders the source line a diagnostic points at with a caret
// under the offending column, for interactive output. It returns "" when
// the line does not land inside the source; a column outside the line is
// clamped to it.
func CodeFrame(source string, d Diagnostic) string {
	if source == "" || d.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if d.Line > len(lines) {
		return ""
	}

	lineText := lines[d.Line-1]
	lineRunes := []rune(lineText)

	column := d.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(d.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		d.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
