package main

import (
	"os"

	"github.com/dailyflow/dailyflow/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
