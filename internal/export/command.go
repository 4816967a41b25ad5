package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"wpexport/internal/config"
	"wpexport/internal/wordpress"

	"github.com/spf13/cobra"
)

type Export struct {
	options
}

func ExportCommand() *cobra.Command {
	e := &Export{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the WordPress posts and save each one as a text file",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := e.resolve(cmd)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			e.setupLogger()

			err = e.Run(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				os.Exit(1)
			}
		},
	}

	e.bind(cmd)
	e.bindOutput(cmd)
	return cmd
}

// Run exports the posts and prints the outcome on out.
func (e *Export) Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	exporter, err := NewExporter(cfg)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}

	report, err := exporter.Export(ctx)
	if err != nil {
		printError(out, err)
		return err
	}
	fmt.Fprintln(out, report)
	return nil
}

func printError(out io.Writer, err error) {
	var se *wordpress.StatusError
	if errors.As(err, &se) {
		fmt.Fprintln(out, "Error fetching data:", se.Code)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
