// Package main provides the openrits CLI, a rental inventory tracker.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "openrits:", err)
		os.Exit(exitUserError)
	}
}
