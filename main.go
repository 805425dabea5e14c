package main

import (
	"os"

	"github.com/million-dollar-projects/mumskids-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
