// main is the entry point for the migcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/migcheck/migcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
