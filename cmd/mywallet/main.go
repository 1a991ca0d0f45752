package main

import (
	"os"

	"github.com/mywallet-dev/mywallet/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
