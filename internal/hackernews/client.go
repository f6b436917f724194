package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/tags"
)

// SourceName is the origin label attached to every item from this client.
const SourceName = "HackerNews"

// Client is a minimal Hacker News API client.
// Docs: https://github.com/HackerNews/API
type Client struct {
	baseAPI   string
	client    *http.Client
	extractor tags.Extractor
}

// NewClient creates a new Hacker News client. baseAPI should be something like
// "https://hacker-news.firebaseio.com/v0". If empty, it defaults to the v0
// endpoint. Tags on fetched items come from the given extractor.
func NewClient(baseAPI string, extractor tags.Extractor) *Client {
	if strings.TrimSpace(baseAPI) == "" {
		baseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	return &Client{
		baseAPI:   strings.TrimRight(baseAPI, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
		extractor: extractor,
	}
}

// hnItem mirrors the subset of HN item fields we care about.
type hnItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Time  int64  `json:"time"`
	Score int    `json:"score"`
}

// TopStories resolves the current top-story list into NewsItems (up to limit).
// Individual item failures are dropped; only the list fetch itself is fatal.
func (c *Client) TopStories(ctx context.Context, limit int) ([]model.NewsItem, error) {
	ids, err := c.fetchIDs(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return c.itemsByIDs(ctx, ids)
}

// Item fetches a single HN item by ID and converts it into a NewsItem.
func (c *Client) Item(ctx context.Context, id int) (model.NewsItem, error) {
	var zero model.NewsItem
	endpoint := fmt.Sprintf("%s/item/%d.json", c.baseAPI, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("hackernews: item %d status %d", id, resp.StatusCode)
	}
	var it hnItem
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return zero, err
	}
	if it.Title == "" {
		return zero, fmt.Errorf("hackernews: item %d has no title", id)
	}
	return c.convertItem(ctx, it), nil
}

// fetchIDs loads the topstories list endpoint.
func (c *Client) fetchIDs(ctx context.Context) ([]int, error) {
	path := c.baseAPI + "/topstories.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("hackernews: topstories status %d", resp.StatusCode)
	}
	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// itemsByIDs resolves multiple IDs concurrently into NewsItems.
func (c *Client) itemsByIDs(ctx context.Context, ids []int) ([]model.NewsItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	// bounded concurrency
	const maxWorkers = 8
	type result struct {
		idx  int
		item model.NewsItem
		err  error
	}
	out := make([]result, len(ids))
	sem := make(chan struct{}, maxWorkers)
	done := make(chan result, len(ids))
	for i, id := range ids {
		i, id := i, id
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			// Per-item timeout to avoid hanging
			ictx, cancel := context.WithTimeout(ctx, 8*time.Second)
			defer cancel()
			it, err := c.Item(ictx, id)
			done <- result{idx: i, item: it, err: err}
		}()
	}
	// wait for all
	for i := 0; i < len(ids); i++ {
		r := <-done
		if r.err != nil {
			// skip failed ones silently; continue
			continue
		}
		out[r.idx] = r
	}
	// collect non-empty entries preserving list order
	items := make([]model.NewsItem, 0, len(ids))
	for _, r := range out {
		if r.item.Title != "" {
			items = append(items, r.item)
		}
	}
	return items, nil
}

// convertItem maps an hnItem to our NewsItem model.
func (c *Client) convertItem(ctx context.Context, h hnItem) model.NewsItem {
	urlStr := strings.TrimSpace(h.URL)
	if urlStr == "" {
		urlStr = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", h.ID)
	}
	var itemTags []string
	if c.extractor != nil {
		itemTags = c.extractor.Extract(ctx, h.Title, urlStr)
	}
	return model.NewsItem{
		Title:      h.Title,
		URL:        urlStr,
		Source:     SourceName,
		Timestamp:  time.Unix(h.Time, 0),
		Tags:       itemTags,
		Popularity: float64(h.Score),
	}
}
