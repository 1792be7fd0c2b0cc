package main

import (
	"os"

	"github.com/metapet/moss60/cmd/moss60chat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
