package feed

import (
	"context"
	"fmt"
	"sync"

	"hud-newsfeed/internal/hackernews"
	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/v2ex"
)

// Source is a pluggable provider of news items. New sources plug in here
// without touching the merge/rank logic.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.NewsItem, error)
}

// NewsLister is the storage read the stored-items source depends on.
type NewsLister interface {
	ListNews(ctx context.Context) ([]model.NewsItem, error)
}

// StoredSource returns all news items currently in storage, unfiltered, in
// storage-native order.
type StoredSource struct {
	Store NewsLister
}

func (s *StoredSource) Name() string { return "stored" }

func (s *StoredSource) Fetch(ctx context.Context) ([]model.NewsItem, error) {
	return s.Store.ListNews(ctx)
}

// HNSource resolves the Hacker News top-story list.
type HNSource struct {
	Client *hackernews.Client
	Limit  int
}

func (s *HNSource) Name() string { return "hackernews" }

func (s *HNSource) Fetch(ctx context.Context) ([]model.NewsItem, error) {
	return s.Client.TopStories(ctx, s.Limit)
}

// V2EXSource fetches topics for a set of V2EX nodes.
type V2EXSource struct {
	Client *v2ex.Client
	Nodes  []string
}

func (s *V2EXSource) Name() string { return "v2ex" }

func (s *V2EXSource) Fetch(ctx context.Context) ([]model.NewsItem, error) {
	var out []model.NewsItem
	for _, node := range s.Nodes {
		items, err := s.Client.TopicsByNode(ctx, node)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// FetchAll issues every source fetch concurrently and waits for all of them.
// The merged result preserves source order. Any source-level error fails the
// whole fetch; per-item failures are the sources' concern.
func FetchAll(ctx context.Context, sources ...Source) ([]model.NewsItem, error) {
	results := make([][]model.NewsItem, len(sources))
	errs := make([]error, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("fetch %s: %w", src.Name(), err)
				return
			}
			results[i] = items
		}(i, src)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	var merged []model.NewsItem
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, nil
}
