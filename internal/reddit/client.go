// Package reddit implements the content source: thread discovery with
// transparent pagination and thread fetching with reply-tree flattening.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/painminer/internal/domain"
	"github.com/jonesrussell/painminer/internal/logger"
)

// DefaultBaseURL is the public Reddit endpoint.
const DefaultBaseURL = "https://www.reddit.com"

const (
	pageSize          = 100
	threadFetchLimit  = 500
	defaultTimeout    = 30 * time.Second
	minuteInSeconds   = 60.0
	defaultPerMinute  = 30
	defaultBurst      = 1
)

// ErrRateLimited marks an HTTP 429 response. It is the retryable failure
// class; everything else from the source is terminal for the thread.
var ErrRateLimited = errors.New("rate limited by source")

// Client talks to the Reddit JSON API. A politeness limiter spaces requests
// out; retry policy is the caller's concern.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRequestsPerMinute sets the politeness limiter rate.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(float64(n)/minuteInSeconds), defaultBurst)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// NewClient creates a Reddit API client.
func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(defaultPerMinute/minuteInSeconds), defaultBurst),
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// listing is the generic Reddit listing envelope.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []json.RawMessage `json:"children"`
		After    string            `json:"after"`
	} `json:"data"`
}

type node struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	Title       string `json:"title"`
	SelfText    string `json:"selftext"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`
}

type commentData struct {
	ID            string          `json:"id"`
	Body          string          `json:"body"`
	Author        string          `json:"author"`
	Distinguished string          `json:"distinguished"`
	Stickied      bool            `json:"stickied"`
	Score         int             `json:"score"`
	Permalink     string          `json:"permalink"`
	Replies       json.RawMessage `json:"replies"`
}

// DiscoverThreads pages through the subreddit listing (the API caps pages at
// 100 entries) until limit summaries are collected or the cursor runs out.
func (c *Client) DiscoverThreads(ctx context.Context, subreddit, sortMode string, limit int) ([]domain.ThreadSummary, error) {
	var summaries []domain.ThreadSummary
	after := ""

	for len(summaries) < limit {
		url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", c.baseURL, subreddit, sortMode, pageSize)
		if after != "" {
			url += "&after=" + after
		}

		var page listing
		if err := c.getJSON(ctx, url, &page); err != nil {
			// Partial discovery is still usable; only a first-page failure
			// is fatal.
			if len(summaries) > 0 {
				c.logger.Warn("discovery page failed, using partial results",
					logger.Int("collected", len(summaries)), logger.Error(err))
				break
			}
			return nil, fmt.Errorf("discover r/%s: %w", subreddit, err)
		}

		if len(page.Data.Children) == 0 {
			break
		}

		for _, raw := range page.Data.Children {
			var n node
			if err := json.Unmarshal(raw, &n); err != nil || n.Kind != "t3" {
				continue
			}
			var post postData
			if err := json.Unmarshal(n.Data, &post); err != nil {
				continue
			}
			summaries = append(summaries, domain.ThreadSummary{
				Title:        post.Title,
				SelfText:     post.SelfText,
				Upvotes:      post.Score,
				CommentCount: post.NumComments,
				Permalink:    post.Permalink,
			})
		}

		after = page.Data.After
		if after == "" {
			break
		}
	}

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	c.logger.Info("threads discovered",
		logger.String("subreddit", subreddit), logger.Int("count", len(summaries)))
	return summaries, nil
}

// FetchThread retrieves one thread and returns its title plus the reply tree
// flattened into a single ordered comment list.
func (c *Client) FetchThread(ctx context.Context, threadURL string) (string, []domain.CommentRaw, error) {
	url := strings.TrimSuffix(threadURL, "/") + fmt.Sprintf("/.json?limit=%d", threadFetchLimit)

	var payload []json.RawMessage
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return "", nil, fmt.Errorf("fetch thread: %w", err)
	}
	if len(payload) < 2 {
		return "", nil, fmt.Errorf("fetch thread: malformed payload (%d segments)", len(payload))
	}

	var postListing listing
	if err := json.Unmarshal(payload[0], &postListing); err != nil || len(postListing.Data.Children) == 0 {
		return "", nil, fmt.Errorf("fetch thread: missing post segment")
	}
	var postNode node
	if err := json.Unmarshal(postListing.Data.Children[0], &postNode); err != nil {
		return "", nil, fmt.Errorf("fetch thread: malformed post node: %w", err)
	}
	var post postData
	if err := json.Unmarshal(postNode.Data, &post); err != nil {
		return "", nil, fmt.Errorf("fetch thread: malformed post data: %w", err)
	}

	comments := flattenComments(payload[1])
	return post.Title, comments, nil
}

// flattenComments walks the nested reply tree iteratively with an explicit
// stack, preserving the top-down reading order. Recursion would risk stack
// depth on very deep threads.
func flattenComments(root json.RawMessage) []domain.CommentRaw {
	var out []domain.CommentRaw
	stack := []json.RawMessage{root}

	for len(stack) > 0 {
		raw := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var n node
		if err := json.Unmarshal(raw, &n); err != nil {
			continue
		}

		switch n.Kind {
		case "Listing":
			var l listing
			if err := json.Unmarshal(raw, &l); err != nil {
				continue
			}
			// Push in reverse so children pop in listing order.
			for i := len(l.Data.Children) - 1; i >= 0; i-- {
				stack = append(stack, l.Data.Children[i])
			}
		case "t1":
			var cd commentData
			if err := json.Unmarshal(n.Data, &cd); err != nil {
				continue
			}
			if body := strings.TrimSpace(cd.Body); body != "" {
				out = append(out, domain.CommentRaw{
					ID:            cd.ID,
					Body:          body,
					Author:        cd.Author,
					Distinguished: cd.Distinguished,
					Stickied:      cd.Stickied,
					Score:         cd.Score,
					Permalink:     cd.Permalink,
				})
			}
			// Replies is either an empty string or a nested listing.
			if len(cd.Replies) > 0 && cd.Replies[0] == '{' {
				stack = append(stack, cd.Replies)
			}
		}
	}

	return out
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", url, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// IsRetryable reports whether the error is transient: a rate-limit response
// or a network timeout. Malformed payloads and other HTTP statuses are
// terminal for the thread.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
