package main

import (
	"os"

	"github.com/DukeRupert/futureforward/cmd/ffctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
