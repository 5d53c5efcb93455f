package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	patterns *map[string]string
	tree     *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file>",
		Short:   "Parse input lines interactively",
		Example: `  pitaya repl expr.gram -p id='[a-z]+'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.patterns = cmd.Flags().StringToStringP("pattern", "p", nil, "regular expression for a terminal, e.g. id='[a-z]+'")
	replFlags.tree = cmd.Flags().Bool("tree", false, "print the parse tree for every accepted line")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := buildAutomaton(args[0])
	if err != nil {
		return err
	}
	sess, err := newSession(a, *replFlags.patterns)
	if err != nil {
		return err
	}
	repl, err := readline.New("pitaya> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Printf("parsing with grammar %s, quit with <ctrl>D\n", a.Grammar().Name)
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := sess.parse(line, *replFlags.tree); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
	return nil
}
