package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hud-newsfeed/internal/auth"
	"hud-newsfeed/internal/feed"
	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/payments"
)

// Store is the storage surface the handlers depend on.
type Store interface {
	CreateUser(ctx context.Context, u model.User) error
	AddNews(ctx context.Context, item model.NewsItem) error
	AddBookmark(ctx context.Context, bm model.Bookmark) (model.Bookmark, error)
	ListBookmarks(ctx context.Context, email string) ([]model.Bookmark, error)
	DeleteBookmark(ctx context.Context, id, email string) error
	GetSettings(ctx context.Context, email string) (model.Settings, error)
	SaveSettings(ctx context.Context, st model.Settings) error
}

// Server wires the feed pipeline and CRUD handlers onto a chi router.
type Server struct {
	log      *slog.Logger
	store    Store
	auth     *auth.Service
	pipeline *feed.Pipeline
	payments payments.IntentCreator
}

func New(log *slog.Logger, store Store, authSvc *auth.Service, pipeline *feed.Pipeline, intents payments.IntentCreator) *Server {
	return &Server{
		log:      log,
		store:    store,
		auth:     authSvc,
		pipeline: pipeline,
		payments: intents,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Post("/jwt", s.handleIssueToken)
	r.Post("/users", s.handleCreateUser)
	r.Post("/create-payment-intent", s.handleCreatePaymentIntent)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Get("/news", s.handleGetNews)
		r.Post("/news", s.handleCreateNews)
		r.Get("/bookmarks", s.handleListBookmarks)
		r.Post("/bookmarks", s.handleCreateBookmark)
		r.Delete("/bookmarks/{id}", s.handleDeleteBookmark)
		r.Get("/settings/{email}", s.handleGetSettings)
		r.Post("/settings", s.handleSaveSettings)
	})

	return r
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
