package main

import (
	"fmt"
	"os"

	"orgdir"
)

func main() {
	if err := orgdir.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
