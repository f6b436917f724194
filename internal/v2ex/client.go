package v2ex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/tags"
)

// Client talks to the V2EX topics API. It is an optional feed source, enabled
// only when a token is configured.
type Client struct {
	baseURL   string
	client    *http.Client
	token     string
	extractor tags.Extractor
}

func NewClient(baseURL, token string, extractor tags.Extractor) *Client {
	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		token:     token,
		extractor: extractor,
	}
}

// topic represents a subset of V2EX topic fields used by this service.
type topic struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Replies int    `json:"replies"`
	URL     string `json:"url"`
	Node    struct {
		Name string `json:"name"`
	} `json:"node"`
	Created int64 `json:"created"`
}

// TopicsByNode fetches topics for a given node.
// API: GET /api/topics/show.json?node_name={node}
func (c *Client) TopicsByNode(ctx context.Context, node string) ([]model.NewsItem, error) {
	endpoint := fmt.Sprintf("%s/api/topics/show.json", c.baseURL)
	q := url.Values{"node_name": {node}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("v2ex: status %d", resp.StatusCode)
	}
	var raw []topic
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	items := make([]model.NewsItem, 0, len(raw))
	for _, t := range raw {
		urlStr := t.URL
		if urlStr == "" {
			urlStr = fmt.Sprintf("%s/t/%d", c.baseURL, t.ID)
		}
		var itemTags []string
		if c.extractor != nil {
			itemTags = c.extractor.Extract(ctx, t.Title, urlStr)
		}
		items = append(items, model.NewsItem{
			Title:      t.Title,
			URL:        urlStr,
			Source:     "V2EX/" + t.Node.Name,
			Timestamp:  time.Unix(t.Created, 0),
			Tags:       itemTags,
			Popularity: float64(t.Replies),
		})
	}
	return items, nil
}
