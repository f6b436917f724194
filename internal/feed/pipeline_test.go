package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hud-newsfeed/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func item(title string, popularity float64, age time.Duration, tags ...string) model.NewsItem {
	return model.NewsItem{
		Title:      title,
		Source:     "HackerNews",
		Timestamp:  testNow.Add(-age),
		Tags:       tags,
		Popularity: popularity,
	}
}

func TestScore(t *testing.T) {
	it := item("a", 100, 10*time.Hour, "ai")
	got := Score(it, []string{"ai"}, testNow)
	// 100 popularity + 10 tag bonus + (50 - 10) recency
	assert.Equal(t, 150.0, got)
}

func TestScoreNoTagBonusWithoutUserTags(t *testing.T) {
	it := item("a", 100, 10*time.Hour, "ai")
	got := Score(it, nil, testNow)
	assert.Equal(t, 140.0, got)
}

func TestScoreRecencyBonusFloorsAtFiftyHours(t *testing.T) {
	old := Score(item("a", 20, 50*time.Hour), nil, testNow)
	older := Score(item("a", 20, 500*time.Hour), nil, testNow)
	assert.Equal(t, 20.0, old)
	assert.Equal(t, 20.0, older)
}

func TestScoreZeroPopularity(t *testing.T) {
	got := Score(item("a", 0, 25*time.Hour), nil, testNow)
	assert.Equal(t, 25.0, got)
}

func TestRankFilterTopicOrTagSemantics(t *testing.T) {
	items := []model.NewsItem{
		// source matches the topic, tags share nothing with user tags
		item("by source", 10, 100*time.Hour, "nothing"),
		// tag matches a user tag, source does not
		{Title: "by tag", Source: "TechCrunch", Timestamp: testNow.Add(-100 * time.Hour), Tags: []string{"ai"}, Popularity: 5},
		// matches neither
		{Title: "dropped", Source: "Elsewhere", Timestamp: testNow.Add(-100 * time.Hour), Tags: []string{"sports"}, Popularity: 99},
	}
	prefs := model.Settings{Topics: []string{"hackernews"}, Tags: []string{"ai"}}

	got := Rank(items, prefs, testNow)
	require.Len(t, got, 2)
	// tag bonus (5+10) outranks the source-only match (10)
	assert.Equal(t, "by tag", got[0].Title)
	assert.Equal(t, "by source", got[1].Title)
}

func TestRankTagEqualsTopicKeepsItem(t *testing.T) {
	items := []model.NewsItem{
		{Title: "tagged ai", Source: "Elsewhere", Timestamp: testNow.Add(-100 * time.Hour), Tags: []string{"ai"}},
	}
	prefs := model.Settings{Topics: []string{"ai"}}

	got := Rank(items, prefs, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "tagged ai", got[0].Title)
}

func TestRankEmptyPreferencesPassThrough(t *testing.T) {
	items := []model.NewsItem{
		item("one", 1, 100*time.Hour),
		item("two", 2, 100*time.Hour),
		item("three", 3, 100*time.Hour),
	}
	got := Rank(items, model.Settings{}, testNow)
	assert.Len(t, got, len(items))
}

func TestRankPlaceholderWhenNothingMatches(t *testing.T) {
	items := []model.NewsItem{
		{Title: "irrelevant", Source: "Elsewhere", Timestamp: testNow.Add(-time.Hour), Tags: []string{"sports"}},
	}
	prefs := model.Settings{Tags: []string{"ai"}}

	got := Rank(items, prefs, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, PlaceholderSource, got[0].Source)
}

func TestRankNoPlaceholderWithEmptyPreferences(t *testing.T) {
	got := Rank(nil, model.Settings{}, testNow)
	assert.Empty(t, got)
}

func TestRankSortsDescendingStable(t *testing.T) {
	items := []model.NewsItem{
		item("low", 1, 100*time.Hour),
		item("tie-a", 10, 100*time.Hour),
		item("tie-b", 10, 100*time.Hour),
		item("high", 50, 100*time.Hour),
	}
	got := Rank(items, model.Settings{}, testNow)
	require.Len(t, got, 4)
	assert.Equal(t, "high", got[0].Title)
	assert.Equal(t, "tie-a", got[1].Title)
	assert.Equal(t, "tie-b", got[2].Title)
	assert.Equal(t, "low", got[3].Title)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	items := []model.NewsItem{item("one", 1, time.Hour)}
	_ = Rank(items, model.Settings{}, testNow)
	assert.Zero(t, items[0].RankScore)
}

func TestRankCaseInsensitivePreferences(t *testing.T) {
	items := []model.NewsItem{
		{Title: "mixed case", Source: "HackerNews", Timestamp: testNow.Add(-100 * time.Hour), Tags: []string{"AI"}, Popularity: 1},
	}
	prefs := model.Settings{Tags: []string{" AI "}}

	got := Rank(items, prefs, testNow)
	require.Len(t, got, 1)
	// filter and tag bonus see the same normalized tag
	assert.Equal(t, 11.0, got[0].RankScore)
}

type stubSource struct {
	name  string
	items []model.NewsItem
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(context.Context) ([]model.NewsItem, error) {
	return s.items, s.err
}

func TestFetchAllMergesInSourceOrder(t *testing.T) {
	a := &stubSource{name: "stored", items: []model.NewsItem{item("stored-1", 1, time.Hour)}}
	b := &stubSource{name: "hn", items: []model.NewsItem{item("hn-1", 1, time.Hour), item("hn-2", 1, time.Hour)}}

	got, err := FetchAll(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "stored-1", got[0].Title)
	assert.Equal(t, "hn-1", got[1].Title)
	assert.Equal(t, "hn-2", got[2].Title)
}

func TestFetchAllFailsOnSourceError(t *testing.T) {
	a := &stubSource{name: "stored", items: []model.NewsItem{item("stored-1", 1, time.Hour)}}
	b := &stubSource{name: "hn", err: errors.New("boom")}

	_, err := FetchAll(context.Background(), a, b)
	assert.ErrorContains(t, err, "hn")
}

func TestPipelineBuild(t *testing.T) {
	p := &Pipeline{
		Sources: []Source{
			&stubSource{name: "stored", items: []model.NewsItem{item("fresh", 1, time.Hour)}},
			&stubSource{name: "hn", items: []model.NewsItem{item("stale", 1, 200*time.Hour)}},
		},
		Now: func() time.Time { return testNow },
	}

	got, err := p.Build(context.Background(), model.Settings{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[0].Title)
	assert.Greater(t, got[0].RankScore, got[1].RankScore)
}
