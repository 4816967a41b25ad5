package wordpress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Rendered is a WordPress field delivered as HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is one element of the /wp/v2/posts response.
// Title and Content are nil when the API left them out.
type Post struct {
	ID      int       `json:"id"`
	Date    Time      `json:"date"`
	Slug    string    `json:"slug"`
	Link    string    `json:"link"`
	Title   *Rendered `json:"title"`
	Content *Rendered `json:"content"`
	Excerpt Rendered  `json:"excerpt"`
}

// TitleHTML returns the rendered title, empty when missing.
func (p Post) TitleHTML() string {
	if p.Title == nil {
		return ""
	}
	return p.Title.Rendered
}

// ContentHTML returns the rendered content, empty when missing.
func (p Post) ContentHTML() string {
	if p.Content == nil {
		return ""
	}
	return p.Content.Rendered
}

// Time is a WordPress date. The API sends the site local time without zone.
// A date in another layout is left zero.
type Time struct {
	time.Time
}

const dateLayout = "2006-01-02T15:04:05"

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t.Time = time.Time{}
	if s == "" {
		return nil
	}
	v, err := time.Parse(dateLayout, s)
	if err != nil {
		slog.Debug("unexpected post date", "date", s, "error", err)
		return nil
	}
	t.Time = v
	return nil
}

// DecodePosts reads a JSON array of posts.
func DecodePosts(r io.Reader) ([]Post, error) {
	var posts *[]Post
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("can't decode posts: %w", err)
	}
	if posts == nil {
		return nil, errors.New("can't decode posts: expected an array")
	}
	return *posts, nil
}
