package main

import (
	"os"

	"dictionary/cmd/dictionary/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
