package main

import (
	"os"

	"github.com/rickchristie/hookmux/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
