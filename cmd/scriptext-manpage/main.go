package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/scriptext/cmd/scriptext"
	"github.com/arthur-debert/scriptext/internal/version"
)

func main() {
	rootCmd := scriptext.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SCRIPTEXT",
		Section: "1",
		Source:  "scriptext " + version.Version,
		Manual:  "scriptext manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
