package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hud-newsfeed/internal/auth"
	"hud-newsfeed/internal/model"
	"hud-newsfeed/internal/storage"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("HUD NewsFeed Backend Running..."))
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || strings.TrimSpace(u.Email) == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email is required"})
		return
	}
	token, err := s.auth.Issue(u.Email)
	if err != nil {
		s.log.Error("issue token", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to issue token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || strings.TrimSpace(u.Email) == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email is required"})
		return
	}
	err := s.store.CreateUser(r.Context(), u)
	if errors.Is(err, storage.ErrUserExists) {
		writeJSON(w, http.StatusOK, messageResponse{Message: "User already exists"})
		return
	}
	if err != nil {
		s.log.Error("create user", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to create user"})
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	prefs, err := s.store.GetSettings(r.Context(), email)
	if err != nil {
		s.log.Error("feed: load settings", slog.String("email", email), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch news"})
		return
	}
	items, err := s.pipeline.Build(r.Context(), prefs)
	if err != nil {
		s.log.Error("feed: build", slog.String("email", email), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch news"})
		return
	}
	if items == nil {
		items = []model.NewsItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	var item model.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid news item"})
		return
	}
	item.Timestamp = time.Now().UTC()
	if item.Source == "" {
		item.Source = "unknown"
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Popularity < 0 {
		item.Popularity = 0
	}
	item.RankScore = 0
	if err := s.store.AddNews(r.Context(), item); err != nil {
		s.log.Error("create news", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to store news"})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	bms, err := s.store.ListBookmarks(r.Context(), email)
	if err != nil {
		s.log.Error("list bookmarks", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch bookmarks"})
		return
	}
	if bms == nil {
		bms = []model.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bms)
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var bm model.Bookmark
	if err := json.NewDecoder(r.Body).Decode(&bm); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid bookmark"})
		return
	}
	if bm.Email == "" {
		bm.Email = auth.EmailFromContext(r.Context())
	}
	saved, err := s.store.AddBookmark(r.Context(), bm)
	if err != nil {
		s.log.Error("create bookmark", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to store bookmark"})
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email := auth.EmailFromContext(r.Context())
	err := s.store.DeleteBookmark(r.Context(), id, email)
	if errors.Is(err, storage.ErrBookmarkNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Bookmark not found"})
		return
	}
	if err != nil {
		s.log.Error("delete bookmark", slog.String("id", id), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bookmark deleted successfully", "id": id})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	st, err := s.store.GetSettings(r.Context(), email)
	if err != nil {
		s.log.Error("get settings", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch settings"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var st model.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil || strings.TrimSpace(st.Email) == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email is required"})
		return
	}
	if err := s.store.SaveSettings(r.Context(), st); err != nil {
		s.log.Error("save settings", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to save settings"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "price is required"})
		return
	}
	secret, err := s.payments.CreateIntent(r.Context(), body.Price)
	if err != nil {
		s.log.Error("create payment intent", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to create payment intent"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}
