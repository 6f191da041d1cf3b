package main

import (
	"fmt"
	"os"

	"github.com/crewwatch-io/crewwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
