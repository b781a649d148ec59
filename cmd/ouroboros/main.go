package main

import (
	"os"

	"github.com/ouroboros-dev/ouroboros/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
