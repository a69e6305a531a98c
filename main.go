package main

import (
	"os"
	"sentiment-analysis/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
