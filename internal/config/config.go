package config

import (
	"bytes"
	"net/url"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	DefaultURL       = "https://exqdental.wpengine.com/wp-json/wp/v2/posts"
	DefaultPerPage   = 100
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"
	DefaultOutputDir = "exq_dental_blog_posts"
	DefaultTimeout   = "30s"

	// maxPerPage is the largest page the WordPress REST API accepts.
	maxPerPage = 100
)

// Export formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Config holds the settings of an export run.
type Config struct {
	URL       string `toml:"url"`
	PerPage   int    `toml:"per_page"`
	UserAgent string `toml:"user_agent"`
	OutputDir string `toml:"output_dir"`
	Format    string `toml:"format"`
	Timeout   string `toml:"timeout"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		URL:       DefaultURL,
		PerPage:   DefaultPerPage,
		UserAgent: DefaultUserAgent,
		OutputDir: DefaultOutputDir,
		Format:    FormatText,
		Timeout:   DefaultTimeout,
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value, unknown keys are an error.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, errors.Errorf("unknown keys in %s:\n%s", path, strict.String())
		}
		return nil, errors.Wrapf(err, "can't parse %s", path)
	}
	return cfg, nil
}

// Validate reports every problem of the configuration.
func (c *Config) Validate() []error {
	errs := make([]error, 0)

	u, err := url.Parse(c.URL)
	switch {
	case c.URL == "":
		errs = append(errs, errors.New("url is empty"))
	case err != nil:
		errs = append(errs, errors.Wrap(err, "invalid url"))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, errors.Errorf("url must be http or https: %s", c.URL))
	}

	if c.PerPage < 1 || c.PerPage > maxPerPage {
		errs = append(errs, errors.Errorf("per_page must be between 1 and %d, got %d", maxPerPage, c.PerPage))
	}
	if c.UserAgent == "" {
		errs = append(errs, errors.New("user_agent is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is empty"))
	}
	if c.Format != FormatText && c.Format != FormatMarkdown {
		errs = append(errs, errors.Errorf("unknown format %q, use %q or %q", c.Format, FormatText, FormatMarkdown))
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		errs = append(errs, errors.Wrap(err, "invalid timeout"))
	} else if d <= 0 {
		errs = append(errs, errors.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	return errs
}

// TimeoutDuration returns the HTTP timeout. The configuration must be valid.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
