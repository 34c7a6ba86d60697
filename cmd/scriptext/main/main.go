package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/scriptext/cmd/scriptext"
	"github.com/arthur-debert/scriptext/pkg/ui"
)

func main() {
	rootCmd := scriptext.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := ui.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
