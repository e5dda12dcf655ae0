package main

import (
	"os"

	"NextWorth/cmd/app/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
