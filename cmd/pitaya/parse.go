package main

import (
	"fmt"
	"strings"

	"github.com/Albeforia/Pitaya/lr"
	"github.com/Albeforia/Pitaya/lr/lalr"
	"github.com/Albeforia/Pitaya/lr/scanner/lexmach"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	patterns *map[string]string
	tree     *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file> <input>...",
		Short:   "Parse input with the LALR(1) parser for a grammar",
		Example: `  pitaya parse expr.gram -p id='[a-z]+' "a + b * c" --tree`,
		Args:    cobra.MinimumNArgs(2),
		RunE:    runParse,
	}
	parseFlags.patterns = cmd.Flags().StringToStringP("pattern", "p", nil, "regular expression for a terminal, e.g. id='[a-z]+'")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the parse tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := buildAutomaton(args[0])
	if err != nil {
		return err
	}
	sess, err := newSession(a, *parseFlags.patterns)
	if err != nil {
		return err
	}
	_, err = sess.parse(strings.Join(args[1:], " "), *parseFlags.tree)
	return err
}

// session holds a parser and a scanner for one grammar.
type session struct {
	lm     *lexmach.LMAdapter
	parser *lalr.Parser
	tree   *treeBuilder
}

func newSession(a *lr.Automaton, patterns map[string]string) (*session, error) {
	lm, err := lexmach.ForGrammar(a.Grammar(), patterns)
	if err != nil {
		return nil, fmt.Errorf("cannot create scanner: %w", err)
	}
	tb := &treeBuilder{}
	return &session{
		lm:     lm,
		parser: lalr.NewParser(a, lalr.WithListener(tb.event)),
		tree:   tb,
	}, nil
}

// parse parses a line of input and prints the result if it has been accepted.
func (sess *session) parse(input string, showTree bool) (bool, error) {
	tracer().Infof("input is %q", input)
	sc, err := sess.lm.Scanner(input)
	if err != nil {
		return false, err
	}
	sess.tree.reset()
	accept, err := sess.parser.Parse(sc)
	if err != nil {
		return false, err
	}
	pterm.Success.Printf("accepted after %d reductions\n", len(sess.parser.Reductions()))
	if showTree {
		if root, ok := sess.tree.root(); ok {
			return accept, pterm.DefaultTree.WithRoot(root).Render()
		}
	}
	return accept, nil
}

// treeBuilder assembles a parse tree from parse events. Shifted tokens become
// leaves, every reduction joins the topmost nodes into a new subtree.
type treeBuilder struct {
	nodes []pterm.TreeNode
}

func (tb *treeBuilder) reset() {
	tb.nodes = tb.nodes[:0]
}

func (tb *treeBuilder) event(e lalr.Event) {
	switch e.Type {
	case lalr.ShiftEvent:
		tb.nodes = append(tb.nodes, pterm.TreeNode{
			Text: fmt.Sprintf("%s %q", e.Token.Terminal(), e.Token.Lexeme()),
		})
	case lalr.ReduceEvent:
		n := len(tb.nodes) - e.Production.Len()
		children := make([]pterm.TreeNode, e.Production.Len())
		copy(children, tb.nodes[n:])
		tb.nodes = append(tb.nodes[:n], pterm.TreeNode{
			Text:     fmt.Sprintf("%s %s", e.Production.LHS.Name, e.Span),
			Children: children,
		})
	}
}

func (tb *treeBuilder) root() (pterm.TreeNode, bool) {
	if len(tb.nodes) != 1 {
		return pterm.TreeNode{}, false
	}
	return pterm.TreeNode{Text: "parse tree", Children: tb.nodes}, true
}
