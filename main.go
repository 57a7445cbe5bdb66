package main

import (
	"os"

	"github.com/akachour/wird/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
