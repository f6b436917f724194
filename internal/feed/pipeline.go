package feed

import (
	"context"
	"sort"
	"strings"
	"time"

	"hud-newsfeed/internal/model"
)

// PlaceholderSource labels the synthetic item returned when preferences match
// nothing.
const PlaceholderSource = "System"

// Pipeline assembles a user's ranked feed from a set of sources. Now is
// injectable so scoring is deterministic under test; it defaults to time.Now.
type Pipeline struct {
	Sources []Source
	Now     func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Build fetches from all sources in parallel, then filters, scores, and sorts
// the merged items for the given preferences. Inputs are never mutated; the
// result is a fresh slice.
func (p *Pipeline) Build(ctx context.Context, prefs model.Settings) ([]model.NewsItem, error) {
	merged, err := FetchAll(ctx, p.Sources...)
	if err != nil {
		return nil, err
	}
	return Rank(merged, prefs, p.now()), nil
}

// Rank applies the filter/score/sort steps to an already-merged item sequence.
func Rank(items []model.NewsItem, prefs model.Settings, now time.Time) []model.NewsItem {
	// One normalization pass; filter and scorer see the same strings.
	topics := lowerAll(prefs.Topics)
	userTags := lowerAll(prefs.Tags)

	filtered := filter(items, topics, userTags)

	scored := make([]model.NewsItem, len(filtered))
	for i, it := range filtered {
		it.RankScore = Score(it, userTags, now)
		scored[i] = it
	}
	// Stable: ties keep their post-filter order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RankScore > scored[j].RankScore
	})

	if len(scored) == 0 && (len(topics) > 0 || len(userTags) > 0) {
		return []model.NewsItem{placeholder(now)}
	}
	return scored
}

// Score computes the relevance of one item for a user:
// popularity, plus 10 per tag shared with the user, plus a recency bonus that
// decays linearly from 50 to 0 over the item's first 50 hours.
func Score(item model.NewsItem, userTags []string, now time.Time) float64 {
	score := item.Popularity
	if len(item.Tags) > 0 && len(userTags) > 0 {
		matches := 0
		for _, t := range item.Tags {
			if containsString(userTags, strings.ToLower(t)) {
				matches++
			}
		}
		score += float64(matches) * 10
	}
	hoursSince := now.Sub(item.Timestamp).Seconds() / 3600
	if bonus := 50 - hoursSince; bonus > 0 {
		score += bonus
	}
	return score
}

// filter keeps an item iff its source contains a topic, or one of its tags
// equals a topic, or one of its tags equals a user tag. With no preferences
// at all the sequence passes through untouched.
func filter(items []model.NewsItem, topics, userTags []string) []model.NewsItem {
	if len(topics) == 0 && len(userTags) == 0 {
		out := make([]model.NewsItem, len(items))
		copy(out, items)
		return out
	}
	out := make([]model.NewsItem, 0, len(items))
	for _, it := range items {
		if matchesTopic(it, topics) || matchesTag(it, userTags) {
			out = append(out, it)
		}
	}
	return out
}

func matchesTopic(it model.NewsItem, topics []string) bool {
	source := strings.ToLower(it.Source)
	for _, topic := range topics {
		if strings.Contains(source, topic) {
			return true
		}
	}
	for _, t := range it.Tags {
		if containsString(topics, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func matchesTag(it model.NewsItem, userTags []string) bool {
	for _, t := range it.Tags {
		if containsString(userTags, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func placeholder(now time.Time) model.NewsItem {
	return model.NewsItem{
		Title:     "No news found matching your preferences",
		Source:    PlaceholderSource,
		Timestamp: now,
		Tags:      []string{},
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
