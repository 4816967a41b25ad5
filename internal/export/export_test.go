package export

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wpexport/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threePosts = `[
  {"id": 3, "date": "2024-02-14T09:00:00", "slug": "ab-test", "link": "https://example.com/ab-test/",
   "title": {"rendered": "A/B Test"},
   "content": {"rendered": "<p>Hello</p><p>World</p>"},
   "excerpt": {"rendered": "<p>Hello\nthere</p>"}},
  {"id": 2, "slug": "veneers", "title": {"rendered": "Don&#8217;t fear veneers"},
   "content": {"rendered": "<h2>Why</h2><ul><li>Shape</li><li>Color</li></ul><script>track()</script>"}},
  {"id": 1, "slug": "first-post", "title": {"rendered": "First"},
   "content": {"rendered": ""}}
]`

// newAPI serves body with the given status on every request.
func newAPI(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.URL = srv.URL + "/wp-json/wp/v2/posts"
	cfg.OutputDir = filepath.Join(t.TempDir(), config.DefaultOutputDir)
	return cfg
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(b)
}

func TestExportWritesOneFilePerPost(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, threePosts))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"ab-test.txt", "veneers.txt", "first-post.txt"}, names)
	assert.Equal(t, "Downloaded 3 posts to '"+cfg.OutputDir+"' directory.\n", out.String())
}

func TestExportFileContent(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, threePosts))

	report, err := mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ab-test.txt", "veneers.txt", "first-post.txt"}, report.Files)

	assert.Equal(t, "Title: A-B Test\n\nHello\nWorld", readFile(t, filepath.Join(cfg.OutputDir, "ab-test.txt")))
	assert.Equal(t, "Title: Don&#8217;t fear veneers\n\nWhy\nShape\nColor", readFile(t, filepath.Join(cfg.OutputDir, "veneers.txt")))
	assert.Equal(t, "Title: First\n\n", readFile(t, filepath.Join(cfg.OutputDir, "first-post.txt")))
}

func TestExportStatusErrorWritesNothing(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusNotFound, `{"code":"rest_no_route"}`))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.Error(t, err)

	assert.Equal(t, "Error fetching data: 404\n", out.String())
	_, err = os.Stat(cfg.OutputDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportOverwritesExistingFile(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, threePosts))
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	stale := filepath.Join(cfg.OutputDir, "ab-test.txt")
	require.NoError(t, os.WriteFile(stale, []byte(strings.Repeat("stale content\n", 20)), 0o644))

	_, err := mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Title: A-B Test\n\nHello\nWorld", readFile(t, stale))

	// a second run gives the same result
	_, err = mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Title: A-B Test\n\nHello\nWorld", readFile(t, stale))
}

func TestExportNoPosts(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, `[]`))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, "Downloaded 0 posts to '"+cfg.OutputDir+"' directory.\n", out.String())
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportDuplicateSlugKeepsLastPost(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, `[
  {"slug": "same", "title": {"rendered": "One"}, "content": {"rendered": "<p>1</p>"}},
  {"slug": "same", "title": {"rendered": "Two"}, "content": {"rendered": "<p>2</p>"}}
]`))

	report, err := mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, "Title: Two\n\n2", readFile(t, filepath.Join(cfg.OutputDir, "same.txt")))
}

func TestExportMissingSlugStops(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, `[
  {"id": 1, "slug": "kept", "title": {"rendered": "Kept"}, "content": {"rendered": "<p>ok</p>"}},
  {"id": 2, "title": {"rendered": "Broken"}, "content": {"rendered": "<p>no slug</p>"}},
  {"id": 3, "slug": "never", "title": {"rendered": "Never"}, "content": {"rendered": "<p>never</p>"}}
]`))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "post #1 (id 2) has no slug")

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "kept.txt"))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "never.txt"))
}

func TestExportMissingFieldStops(t *testing.T) {
	testCases := []struct {
		name   string
		broken string
		want   string
	}{
		{"no_title", `{"id": 2, "slug": "no-title", "content": {"rendered": "<p>x</p>"}}`, "post #1 (id 2) has no title"},
		{"null_title", `{"id": 2, "slug": "no-title", "title": null, "content": {"rendered": "<p>x</p>"}}`, "post #1 (id 2) has no title"},
		{"no_content", `{"id": 2, "slug": "no-content", "title": {"rendered": "T"}}`, "post #1 (id 2) has no content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t, newAPI(t, http.StatusOK, `[
  {"id": 1, "slug": "kept", "title": {"rendered": "Kept"}, "content": {"rendered": "<p>ok</p>"}},
  `+tc.broken+`,
  {"id": 3, "slug": "never", "title": {"rendered": "Never"}, "content": {"rendered": "<p>never</p>"}}
]`))

			var out bytes.Buffer
			err := (&Export{}).Run(context.Background(), cfg, &out)
			require.Error(t, err)
			assert.Equal(t, "Error: "+tc.want+"\n", out.String())

			assert.Equal(t, "Title: Kept\n\nok", readFile(t, filepath.Join(cfg.OutputDir, "kept.txt")))
			entries, err := os.ReadDir(cfg.OutputDir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestExportNullBody(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, `null`))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.Equal(t, "Error: can't decode posts: expected an array\n", out.String())
	_, err = os.Stat(cfg.OutputDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportSendsDefaultRequest(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	cfg := testConfig(t, srv)

	_, err := mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "per_page=100", gotQuery)
	assert.Equal(t, config.DefaultUserAgent, gotAgent)
	assert.Equal(t, "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36", gotAgent)
}

func TestExportLogsNothingAtInfoLevel(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig(t, newAPI(t, http.StatusOK, threePosts))
	var out bytes.Buffer
	require.NoError(t, (&Export{}).Run(context.Background(), cfg, &out))

	assert.Empty(t, logs.String())
	assert.Equal(t, "Downloaded 3 posts to '"+cfg.OutputDir+"' directory.\n", out.String())
}

func TestExportMalformedJSON(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, `[{"slug": `))

	var out bytes.Buffer
	err := (&Export{}).Run(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Error: can't decode posts"))
	_, err = os.Stat(cfg.OutputDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportMarkdown(t *testing.T) {
	cfg := testConfig(t, newAPI(t, http.StatusOK, threePosts))
	cfg.Format = config.FormatMarkdown

	report, err := mustExporter(t, cfg).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ab-test.md", "veneers.md", "first-post.md"}, report.Files)

	md := readFile(t, filepath.Join(cfg.OutputDir, "ab-test.md"))
	assert.True(t, strings.HasPrefix(md, "---\ntitle: A/B Test\nslug: ab-test\n"), md)
	assert.Contains(t, md, "link: https://example.com/ab-test/\n")
	assert.Contains(t, md, "summary: Hello there\n")
	assert.Contains(t, md, "wordpress_id: 3\n")
	assert.True(t, strings.HasSuffix(md, "---\nHello\n\nWorld\n"), md)

	md = readFile(t, filepath.Join(cfg.OutputDir, "veneers.md"))
	assert.Contains(t, md, "title: Don’t fear veneers\n")
	assert.Contains(t, md, "## Why")
	assert.NotContains(t, md, "track()")
}

func mustExporter(t *testing.T, cfg *config.Config) *Exporter {
	t.Helper()
	e, err := NewExporter(cfg)
	require.NoError(t, err)
	return e
}
