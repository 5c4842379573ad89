package main

import (
	"os"

	"github.com/abhisek/estudos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
