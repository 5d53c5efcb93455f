package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Albeforia/Pitaya/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var buildFlags = struct {
	table  *bool
	output *string
	html   *string
	dot    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build <grammar file>",
		Short:   "Build the LALR(1) automaton for a grammar",
		Example: `  pitaya build expr.gram -o expr.out --dot expr.dot`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBuild,
	}
	buildFlags.table = cmd.Flags().Bool("table", false, "print the action table")
	buildFlags.output = cmd.Flags().StringP("output", "o", "", "write a report of states and conflicts to a file")
	buildFlags.html = cmd.Flags().String("html", "", "write the action table as HTML to a file")
	buildFlags.dot = cmd.Flags().String("dot", "", "write the automaton in Graphviz format to a file")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := buildAutomaton(args[0])
	if err != nil {
		return err
	}
	stats := a.Stats()
	pterm.Success.Printf("%s: %d states, %d items, %d conflicts\n",
		a.Grammar().Name, stats.States, stats.Items, len(a.Conflicts()))
	tracer().Infof("lookahead propagation took %d passes", stats.Passes)
	if *buildFlags.table {
		if err := printActionTable(a); err != nil {
			return err
		}
	}
	if err := writeFile(*buildFlags.output, a.Report); err != nil {
		return err
	}
	if err := writeFile(*buildFlags.html, func(w io.Writer) { lr.ActionTableAsHTML(a, w) }); err != nil {
		return err
	}
	return writeFile(*buildFlags.dot, a.ToGraphviz)
}

func writeFile(path string, write func(io.Writer)) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	write(f)
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	pterm.Info.Printf("wrote %s\n", path)
	return nil
}

// printActionTable renders one row per state and one column per symbol.
//
//    s<n>   shift to state n
//    r<p>   reduce by production p
//    g<n>   goto state n
//    acc    accept
func printActionTable(a *lr.Automaton) error {
	g := a.Grammar()
	header := []string{"state"}
	g.EachSymbol(func(sym *lr.Symbol) {
		if sym != g.Start() {
			header = append(header, sym.Name)
		}
	})
	data := pterm.TableData{header}
	for _, s := range a.States() {
		row := []string{strconv.Itoa(s.ID)}
		g.EachSymbol(func(sym *lr.Symbol) {
			if sym != g.Start() {
				row = append(row, compact(s.Action(sym)))
			}
		})
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func compact(a lr.Action) string {
	switch a.Type {
	case lr.ShiftAction:
		return "s" + strconv.Itoa(a.Value)
	case lr.ReduceAction:
		return "r" + strconv.Itoa(a.Value)
	case lr.GotoAction:
		return "g" + strconv.Itoa(a.Value)
	case lr.AcceptAction:
		return "acc"
	}
	return ""
}
