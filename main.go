package main

import (
	"os"

	"github.com/arvoai/arvo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
