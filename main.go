// modsync keeps the mods of a game client in sync with the host it connects to.
package main

import (
	"fmt"
	"os"

	"github.com/rat/modsync/cmd"
	"github.com/rat/modsync/node"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := node.GetCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
