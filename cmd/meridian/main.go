// Command meridian runs a full node: initialize its data directory, run the
// node, run the miner loop against the node's merkle log, and move leaves in and
// out of its merkle log.
package main

import (
	"fmt"
	"os"

	"github.com/meridianchain/meridian/cmd/meridian/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
