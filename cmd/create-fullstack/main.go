package main

import (
	"os"

	"github.com/fullstack-creator/create-fullstack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
