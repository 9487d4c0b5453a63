package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "docsift",
		Short: "Extract document outlines and rank sections for a persona and task",
	}

	root.AddCommand(outlineCmd())
	root.AddCommand(rankCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
