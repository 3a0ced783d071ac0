package main

import (
	"os"

	"github.com/randalmurphal/lazorkit/cmd/lazorkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
