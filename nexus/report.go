package nexus

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Report is the serializable artifact of one front-end pass: diagnostics,
// the symbol table, the token buffer, and the AST rendered as a label tree.
type Report struct {
	Errors      []ReportError           `json:"errors"`
	SymbolTable map[string]ReportSymbol `json:"symbolTable"`
	HasErrors   bool                    `json:"hasErrors"`
	ErrorCount  int                     `json:"errorCount"`
	Tokens      []ReportToken           `json:"tokens"`
	AST         *TreeNode               `json:"ast"`
}

type ReportError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Type    string `json:"type"`
}

type ReportSymbol struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type ReportToken struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// NewReport assembles the report for a completed parse.
func NewReport(p *Parser, root Node) Report {
	diags := p.Errors()

	report := Report{
		Errors:      make([]ReportError, 0, len(diags)),
		SymbolTable: make(map[string]ReportSymbol),
		HasErrors:   p.HasErrors(),
		ErrorCount:  len(diags),
		Tokens:      make([]ReportToken, 0, len(p.Tokens())),
		AST:         Tree(root),
	}

	for _, d := range diags {
		report.Errors = append(report.Errors, ReportError{
			Message: d.Message,
			Line:    d.Line,
			Column:  d.Column,
			Type:    string(d.Category),
		})
	}

	for name, sym := range p.SymbolTable().All() {
		report.SymbolTable[name] = ReportSymbol{
			Name:   sym.Name,
			Type:   sym.Type,
			Line:   sym.Line,
			Column: sym.Column,
		}
	}

	for _, tok := range p.Tokens() {
		report.Tokens = append(report.Tokens, ReportToken{
			Type:   string(tok.Type),
			Value:  tok.Lexeme,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}

	return report
}

// JSON renders the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summary renders the human-readable result: the symbol table on success,
// otherwise every diagnostic. Symbol names are sorted here for stable
// output; the table itself carries no order.
func (r Report) Summary() string {
	var sb strings.Builder

	if !r.HasErrors {
		sb.WriteString("Parsing successful!\n")
		sb.WriteString("Symbol Table:\n")
		names := make([]string, 0, len(r.SymbolTable))
		for name := range r.SymbolTable {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  %s : %s\n", name, r.SymbolTable[name].Type)
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "Parsing completed with %d error(s):\n", r.ErrorCount)
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "  ERROR(%s): %s at line %d, column %d\n", e.Type, e.Message, e.Line, e.Column)
	}
	return sb.String()
}
