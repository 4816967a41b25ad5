package main

import (
	"context"
	"fmt"
	"os"

	"wpexport/internal/export"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wpexport",
		Short: "wpexport saves the posts of a WordPress site as text files",
	}

	rootCmd.AddCommand(export.ExportCommand())
	rootCmd.AddCommand(export.ListCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
