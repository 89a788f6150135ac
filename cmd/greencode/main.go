package main

import (
	"fmt"
	"os"

	"github.com/nulzo/greencode-advisor/internal/cli"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", cli.CrossMark(), err)
		os.Exit(1)
	}
}
