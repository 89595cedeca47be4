package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgomes/nexuslang/nexus"
)

const version = "0.1.0"

// errDiagnostics marks a run that completed but found problems in the
// source; it sets the exit code without printing anything extra.
var errDiagnostics = errors.New("source contains errors")

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "nexus <source_file>",
	Short: "Front end for the Nexus toy language",
	Long: `nexus scans and parses a Nexus source file, checks declarations, and
reports the token stream, the syntax tree, the symbol table, and any
lexical, syntax, or semantic findings.

The language accepts both keyword vocabularies interchangeably:
canonical (main, var, int, if, else, while, for, input, output) and
alternate (nexus, shard, core, probe, fallback, pulse, cycle, listen,
broadcast).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return compileFile(cmd, args[0], jsonOutput)
	},
}

func compileFile(cmd *cobra.Command, path string, asJSON bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	parser := nexus.New(string(source))
	root := parser.Parse()
	report := nexus.NewReport(parser, root)

	if asJSON {
		out, err := report.JSON()
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), report.Summary())
	}

	if report.HasErrors {
		return errDiagnostics
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nexus version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nexus v%s\n", version)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
