package wordpress

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// StatusError is returned when the API answers with anything but 200.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch posts: %s, status: %s", e.URL, e.Status)
}

type Client struct {
	client    http.Client
	endpoint  string
	perPage   int
	userAgent string
}

// NewClient returns a client for the posts collection at endpoint,
// e.g. https://example.com/wp-json/wp/v2/posts
func NewClient(endpoint string, perPage int, userAgent string, timeout time.Duration) *Client {
	// Safe HTTP client settings
	client := http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:       10,
			IdleConnTimeout:    30 * time.Second,
			DisableCompression: false,
		},
	}
	return &Client{
		client:    client,
		endpoint:  endpoint,
		perPage:   perPage,
		userAgent: userAgent,
	}
}

// PostsURL is the URL of the single page the client fetches.
func (c *Client) PostsURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("per_page", strconv.Itoa(c.perPage))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPosts gets one page of posts, in the order the API returns them.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	postsURL, err := c.PostsURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", postsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	slog.Debug("fetching posts", "url", postsURL)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: postsURL, Code: resp.StatusCode, Status: resp.Status}
	}

	posts, err := DecodePosts(resp.Body)
	if err != nil {
		return nil, err
	}
	slog.Debug("posts fetched", "count", len(posts))
	return posts, nil
}
