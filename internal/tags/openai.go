package tags

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// LLMExtractor implements Extractor using the OpenAI Chat Completions API.
// Any failure (network, quota, empty response) falls back to FallbackTags, so
// extraction itself never fails.
type LLMExtractor struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewLLMExtractor(cfg Config) *LLMExtractor {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &LLMExtractor{client: c, model: model}
}

func (e *LLMExtractor) Extract(ctx context.Context, title, url string) []string {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Extract 5 relevant tags from this news article.\nTitle: %q\nURL: %q\nReturn only a comma-separated list of tags (no sentences).",
		title, url,
	)
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		slog.Error("tags: llm extraction error", "err", err)
		return FallbackTags(title)
	}
	if len(resp.Choices) == 0 {
		return FallbackTags(title)
	}
	parsed := parseTagList(resp.Choices[0].Message.Content)
	if len(parsed) == 0 {
		return FallbackTags(title)
	}
	return parsed
}

func parseTagList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
