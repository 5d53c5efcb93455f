/*
Command pitaya builds LALR(1) automata from grammar files and parses input
with them.

    pitaya build expr.gram --table --dot expr.dot
    pitaya parse expr.gram -p id='[a-z]+' "a + b * c" --tree
    pitaya repl expr.gram -p id='[a-z]+'

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
