package export

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"wpexport/internal/config"
	"wpexport/internal/wordpress"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"
)

type List struct {
	options
}

func ListCommand() *cobra.Command {
	l := &List{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the posts published by the WordPress site",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := l.resolve(cmd)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			l.setupLogger()

			err = l.Run(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				os.Exit(1)
			}
		},
	}

	l.bind(cmd)
	return cmd
}

// Run prints one line per post, without writing anything on disk.
func (l *List) Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	client := wordpress.NewClient(cfg.URL, cfg.PerPage, cfg.UserAgent, cfg.TimeoutDuration())
	posts, err := client.FetchPosts(ctx)
	if err != nil {
		printError(out, err)
		return err
	}

	width := 0
	for _, p := range posts {
		width = max(width, len(p.Slug))
	}
	for _, p := range posts {
		slug := p.Slug + strings.Repeat(" ", width-len(p.Slug))
		lipgloss.Fprintln(out, PostSlugStyle.Render(slug), PostTitleStyle.Render(html.UnescapeString(p.TitleHTML())))
	}
	lipgloss.Fprintln(out, SpacerStyle.Render(strings.Repeat("─", max(width, 20))))
	lipgloss.Fprintln(out, PostsCountStyle.Render(fmt.Sprintf("%d posts", len(posts))))
	return nil
}
