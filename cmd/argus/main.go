package main

import (
	"fmt"
	"os"

	"github.com/huntridge-labs/argus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "argus: %v\n", err)
		os.Exit(1)
	}
}
