package main

import (
	"fmt"
	"os"

	"flowershop/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flowershop:", err)
		os.Exit(1)
	}
}
