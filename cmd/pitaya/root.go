package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Albeforia/Pitaya/lr"
	"github.com/Albeforia/Pitaya/lr/gramfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'pitaya.cli'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.cli")
}

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "pitaya",
	Short: "Build LALR(1) parsers from grammar files",
	Long: `pitaya reads a grammar file, constructs its LALR(1) automaton and
- reports states, lookaheads and conflicts,
- exports the action table as text, HTML or Graphviz,
- parses input with the resulting parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		initTracing(*rootFlags.trace)
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	for _, key := range []string{"pitaya.lr", "pitaya.scanner", "pitaya.cli"} {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Infof("Trace level is %s", level)
}

func readGrammar(path string) (*lr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file %s: %w", path, err)
	}
	defer f.Close()
	g, err := gramfile.Read(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	g.Dump() // only visible in debug mode
	return g, nil
}

// buildAutomaton reads a grammar file and constructs its automaton, printing
// every conflict as a warning.
func buildAutomaton(path string) (*lr.Automaton, error) {
	g, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	a := lr.Build(g, lr.WithConflictHandler(func(c lr.Conflict) {
		pterm.Warning.Println(c.String())
	}))
	return a, nil
}
