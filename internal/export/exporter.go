package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"wpexport/internal/config"
	"wpexport/internal/filename"
	"wpexport/internal/wordpress"
)

// Exporter writes one file per post into the output directory.
type Exporter struct {
	client   *wordpress.Client
	outDir   string
	renderer renderer
}

// Report sums up an export.
type Report struct {
	Count     int      // number of posts returned by the API
	OutputDir string   // directory holding the files
	Files     []string // written files, in the order of the posts
}

func (r Report) String() string {
	return fmt.Sprintf("Downloaded %d posts to '%s' directory.", r.Count, r.OutputDir)
}

func NewExporter(cfg *config.Config) (*Exporter, error) {
	r, err := newRenderer(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		client:   wordpress.NewClient(cfg.URL, cfg.PerPage, cfg.UserAgent, cfg.TimeoutDuration()),
		outDir:   cfg.OutputDir,
		renderer: r,
	}, nil
}

// Export fetches the posts and writes them. Nothing touches the disk when the
// fetch fails.
func (e *Exporter) Export(ctx context.Context) (*Report, error) {
	posts, err := e.client.FetchPosts(ctx)
	if err != nil {
		return nil, err
	}
	return e.WritePosts(ctx, posts)
}

// WritePosts writes the posts in order. The first error stops the export,
// the files written so far are left in place.
func (e *Exporter) WritePosts(ctx context.Context, posts []wordpress.Post) (*Report, error) {
	err := os.MkdirAll(e.outDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("can't create the output directory: %w", err)
	}

	rfs, err := os.OpenRoot(e.outDir)
	if err != nil {
		return nil, err
	}
	defer rfs.Close()

	report := &Report{OutputDir: e.outDir}
	for i, post := range posts {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		switch {
		case post.Slug == "":
			return report, fmt.Errorf("post #%d (id %d) has no slug", i, post.ID)
		case post.Title == nil:
			return report, fmt.Errorf("post #%d (id %d) has no title", i, post.ID)
		case post.Content == nil:
			return report, fmt.Errorf("post #%d (id %d) has no content", i, post.ID)
		}
		name, err := e.writePost(ctx, rfs, post)
		if err != nil {
			return report, fmt.Errorf("can't export post %q: %w", post.Slug, err)
		}
		report.Files = append(report.Files, name)
		slog.Debug("post exported", "slug", post.Slug, "file", name)
	}
	report.Count = len(posts)
	return report, nil
}

func (e *Exporter) writePost(ctx context.Context, rfs *os.Root, post wordpress.Post) (string, error) {
	var buf bytes.Buffer
	err := e.renderer.render(ctx, &buf, post)
	if err != nil {
		return "", err
	}

	name := filename.PostFile(post.Slug, e.renderer.ext())
	f, err := rfs.Create(name)
	if err != nil {
		return "", fmt.Errorf("can't create %s: %w", name, err)
	}
	_, err = f.Write(buf.Bytes())
	if err != nil {
		f.Close()
		return "", fmt.Errorf("can't write %s: %w", name, err)
	}
	return name, f.Close()
}
