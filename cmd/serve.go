package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hud-newsfeed/internal/auth"
	"hud-newsfeed/internal/feed"
	"hud-newsfeed/internal/hackernews"
	"hud-newsfeed/internal/httpapi"
	"hud-newsfeed/internal/logger"
	"hud-newsfeed/internal/payments"
	"hud-newsfeed/internal/redisclient"
	"hud-newsfeed/internal/storage"
	"hud-newsfeed/internal/tags"
	"hud-newsfeed/internal/v2ex"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		log := logger.New("api", cfg.App.LogLevel)

		if cfg.Auth.Secret == "" {
			return errors.New("auth.secret must be configured")
		}
		ttl, err := time.ParseDuration(cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		var extractor tags.Extractor = tags.Dictionary{}
		if cfg.OpenAI.APIKey != "" {
			extractor = tags.NewLLMExtractor(tags.Config{
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				BaseURL: cfg.OpenAI.BaseURL,
			})
		}

		sources := []feed.Source{
			&feed.StoredSource{Store: store},
			&feed.HNSource{
				Client: hackernews.NewClient(cfg.Sources.HN.BaseAPI, extractor),
				Limit:  cfg.Sources.HN.TopN,
			},
		}
		if cfg.Sources.V2EX.Token != "" && len(cfg.Sources.V2EX.Nodes) > 0 {
			sources = append(sources, &feed.V2EXSource{
				Client: v2ex.NewClient(cfg.Sources.V2EX.BaseURL, cfg.Sources.V2EX.Token, extractor),
				Nodes:  cfg.Sources.V2EX.Nodes,
			})
		}
		pipeline := &feed.Pipeline{Sources: sources}

		authSvc := auth.New(cfg.Auth.Secret, ttl)
		intents := payments.NewStripe(cfg.Stripe.SecretKey)
		srv := httpapi.New(log, store, authSvc, pipeline, intents)

		httpServer := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("api server starting", slog.String("addr", cfg.Server.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
