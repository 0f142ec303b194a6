// main is the entry point for the tabletalk CLI.
package main

import (
	"os"

	"github.com/tabletalk/tabletalk/cmd"
	"github.com/tabletalk/tabletalk/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.WarningColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
