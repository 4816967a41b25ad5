package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"wpexport/internal/config"

	"github.com/spf13/cobra"
)

// options are the settings shared by the commands talking to the API.
type options struct {
	configPath string
	verbose    bool
	flags      config.Config // values given on the command line
}

func (o *options) bind(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVar(&o.configPath, "config", "", "Path to a TOML configuration file")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Log debug messages on stderr")
	cmd.Flags().StringVar(&o.flags.URL, "url", def.URL, "WordPress posts endpoint")
	cmd.Flags().IntVar(&o.flags.PerPage, "per-page", def.PerPage, "Number of posts requested (1-100)")
	cmd.Flags().StringVar(&o.flags.UserAgent, "user-agent", def.UserAgent, "User-Agent header sent to the API")
	cmd.Flags().StringVar(&o.flags.Timeout, "timeout", def.Timeout, "HTTP timeout")
}

func (o *options) bindOutput(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVarP(&o.flags.OutputDir, "out", "o", def.OutputDir, "Output directory")
	cmd.Flags().StringVar(&o.flags.Format, "format", def.Format, "Output format: text or markdown")
}

// resolve merges the defaults, the configuration file and the flags set on
// the command line, in that order.
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = o.flags.URL
	}
	if flags.Changed("per-page") {
		cfg.PerPage = o.flags.PerPage
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = o.flags.UserAgent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.flags.Timeout
	}
	if flags.Changed("out") {
		cfg.OutputDir = o.flags.OutputDir
	}
	if flags.Changed("format") {
		cfg.Format = o.flags.Format
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n%w", errors.Join(errs...))
	}
	return cfg, nil
}

func (o *options) setupLogger() {
	if o.verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}
