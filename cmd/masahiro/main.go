package main

import (
	"os"

	"masahiro/cmd/masahiro/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
