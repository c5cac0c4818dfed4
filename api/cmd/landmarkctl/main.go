package main

import (
	"os"

	"landmark-lens/api/cmd/landmarkctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
