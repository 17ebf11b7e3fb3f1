package main

import (
	"os"

	"github.com/mouseminder/mouseminder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
