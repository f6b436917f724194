package tags

import (
	"context"
	"regexp"
	"strings"
)

// Extractor maps an article title/url to a small set of lowercase keyword tags.
type Extractor interface {
	Extract(ctx context.Context, title, url string) []string
}

var tokenRe = regexp.MustCompile(`\W+`)

// vocabulary is the master keyword set for the dictionary extractor. Grouping
// is for maintenance only; callers see one flat set.
var vocabulary = buildVocabulary(
	// programming languages
	[]string{"go", "golang", "rust", "python", "javascript", "typescript", "java", "kotlin", "swift", "ruby", "php", "scala", "elixir", "zig", "haskell"},
	// frameworks
	[]string{"react", "vue", "angular", "svelte", "django", "rails", "spring", "laravel", "nextjs", "flutter", "node", "express"},
	// AI/ML
	[]string{"ai", "ml", "llm", "gpt", "openai", "gemini", "claude", "pytorch", "tensorflow", "transformer", "agent", "embedding", "rag"},
	// cloud/web
	[]string{"aws", "azure", "gcp", "kubernetes", "docker", "serverless", "cloud", "api", "http", "grpc", "graphql", "wasm", "linux", "security"},
	// business
	[]string{"startup", "funding", "ipo", "acquisition", "layoffs", "saas", "revenue", "vc"},
	// blockchain
	[]string{"bitcoin", "ethereum", "blockchain", "crypto", "web3", "defi", "nft"},
	// data
	[]string{"database", "sql", "postgres", "mysql", "redis", "kafka", "sqlite", "mongodb", "analytics", "data"},
)

func buildVocabulary(groups ...[]string) map[string]struct{} {
	v := make(map[string]struct{})
	for _, g := range groups {
		for _, w := range g {
			v[w] = struct{}{}
		}
	}
	return v
}

// Dictionary extracts tags by matching title tokens against a fixed keyword
// vocabulary. Deterministic, no failure mode, may return an empty slice.
type Dictionary struct{}

func (Dictionary) Extract(_ context.Context, title, _ string) []string {
	var out []string
	for _, tok := range tokenRe.Split(strings.ToLower(title), -1) {
		if tok == "" {
			continue
		}
		if _, ok := vocabulary[tok]; ok {
			out = append(out, tok)
		}
	}
	return out
}

// FallbackTags is the deterministic fallback used when LLM extraction fails:
// words from the title longer than 4 characters, in original order, first 5,
// lowercased. No stopword removal.
func FallbackTags(title string) []string {
	var out []string
	for _, w := range strings.Fields(title) {
		if len(w) <= 4 {
			continue
		}
		out = append(out, strings.ToLower(w))
		if len(out) == 5 {
			break
		}
	}
	return out
}
