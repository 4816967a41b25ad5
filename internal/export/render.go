package export

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"wpexport/internal/config"
	"wpexport/internal/filename"
	"wpexport/internal/htmltext"
	"wpexport/internal/wordpress"

	"gopkg.in/yaml.v3"
)

type renderer interface {
	ext() string
	render(ctx context.Context, w io.Writer, post wordpress.Post) error
}

func newRenderer(format string) (renderer, error) {
	switch format {
	case config.FormatText:
		return textRenderer{}, nil
	case config.FormatMarkdown:
		return markdownRenderer{md: htmltext.NewMarkdown()}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// textRenderer writes the title line, a blank line and the visible text.
type textRenderer struct{}

func (textRenderer) ext() string { return "txt" }

func (textRenderer) render(_ context.Context, w io.Writer, post wordpress.Post) error {
	text, err := htmltext.Extract(post.ContentHTML())
	if err != nil {
		return fmt.Errorf("can't extract text: %w", err)
	}
	_, err = fmt.Fprintf(w, "Title: %s\n\n", filename.Title(post.TitleHTML()))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// markdownRenderer writes a front matter followed by the content in markdown.
type markdownRenderer struct {
	md *htmltext.Markdown
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Date        string `yaml:"date,omitempty"`
	Link        string `yaml:"link,omitempty"`
	Summary     string `yaml:"summary,omitempty"`
	WordPressID int    `yaml:"wordpress_id,omitempty"`
}

func (markdownRenderer) ext() string { return "md" }

func (r markdownRenderer) render(ctx context.Context, w io.Writer, post wordpress.Post) error {
	fm := frontMatter{
		Title:       html.UnescapeString(post.TitleHTML()),
		Slug:        post.Slug,
		Link:        post.Link,
		WordPressID: post.ID,
	}
	if !post.Date.IsZero() {
		fm.Date = post.Date.Format("2006-01-02T15:04:05")
	}
	if post.Excerpt.Rendered != "" {
		summary, err := htmltext.Extract(post.Excerpt.Rendered)
		if err != nil {
			return fmt.Errorf("can't extract the excerpt: %w", err)
		}
		fm.Summary = strings.Join(strings.Fields(summary), " ")
	}

	content, err := r.md.Convert(ctx, post.ContentHTML())
	if err != nil {
		return err
	}

	// Marshal front matter to YAML
	b, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "---\n")
	if err == nil {
		_, err = w.Write(b)
	}
	if err == nil {
		_, err = io.WriteString(w, "---\n")
	}
	if err == nil {
		_, err = io.WriteString(w, content)
	}
	if err == nil && content != "" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
