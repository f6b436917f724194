package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/redisclient"
	"hud-newsfeed/internal/storage"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedItem is the YAML shape accepted by the seed command.
type seedItem struct {
	Title      string    `yaml:"title"`
	URL        string    `yaml:"url"`
	Source     string    `yaml:"source"`
	Timestamp  time.Time `yaml:"timestamp"`
	Tags       []string  `yaml:"tags"`
	Popularity float64   `yaml:"popularity"`
}

// seedCmd loads news items from a YAML file into storage.
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load news items from a YAML file into Redis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var seeds []seedItem
		if err := yaml.Unmarshal(raw, &seeds); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, s := range seeds {
			item := model.NewsItem{
				Title:      s.Title,
				URL:        s.URL,
				Source:     s.Source,
				Timestamp:  s.Timestamp,
				Tags:       s.Tags,
				Popularity: s.Popularity,
			}
			if item.Source == "" {
				item.Source = "unknown"
			}
			if item.Tags == nil {
				item.Tags = []string{}
			}
			if item.Timestamp.IsZero() {
				item.Timestamp = time.Now().UTC()
			}
			if err := store.AddNews(ctx, item); err != nil {
				return fmt.Errorf("store %q: %w", item.Title, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items\n", len(seeds))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
