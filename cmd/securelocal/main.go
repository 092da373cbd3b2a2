package main

import (
	"os"

	"securelocal/cmd/securelocal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
