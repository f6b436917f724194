package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hud-newsfeed/internal/model"
)

var (
	// ErrUserExists is returned when creating a user whose email is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrBookmarkNotFound is returned when a bookmark is missing or owned by
	// someone else.
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func userKey(email string) string {
	return "user:" + email
}

func settingsKey(email string) string {
	return "settings:" + email
}

func bookmarkKey(id string) string {
	return "bookmark:" + id
}

func bookmarksByEmailKey(email string) string {
	return "bookmarks:" + email
}

const newsKey = "news:items"

// CreateUser stores a new user record keyed by email. Returns ErrUserExists
// when the email is already registered.
func (s *RedisStore) CreateUser(ctx context.Context, u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, userKey(u.Email), b, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserExists
	}
	return nil
}

// GetUser loads a user by email. Returns redis.Nil when absent.
func (s *RedisStore) GetUser(ctx context.Context, email string) (model.User, error) {
	var u model.User
	b, err := s.rdb.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		return u, err
	}
	err = json.Unmarshal(b, &u)
	return u, err
}

// AddNews appends a news item. RankScore is transient and never persisted.
func (s *RedisStore) AddNews(ctx context.Context, item model.NewsItem) error {
	item.RankScore = 0
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, newsKey, b).Err()
}

// ListNews returns all stored news items in insertion order.
func (s *RedisStore) ListNews(ctx context.Context) ([]model.NewsItem, error) {
	raw, err := s.rdb.LRange(ctx, newsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsItem, 0, len(raw))
	for _, r := range raw {
		var it model.NewsItem
		if err := json.Unmarshal([]byte(r), &it); err != nil {
			return nil, fmt.Errorf("decode news item: %w", err)
		}
		out = append(out, it)
	}
	return out, nil
}

// AddBookmark stores a bookmark with a fresh ID and creation time, and indexes
// it in the owner's sorted set for newest-first listing.
func (s *RedisStore) AddBookmark(ctx context.Context, bm model.Bookmark) (model.Bookmark, error) {
	bm.ID = uuid.NewString()
	bm.CreatedAt = time.Now().UTC()
	b, err := json.Marshal(bm)
	if err != nil {
		return bm, err
	}
	if err := s.rdb.Set(ctx, bookmarkKey(bm.ID), b, 0).Err(); err != nil {
		return bm, err
	}
	z := redis.Z{Score: float64(bm.CreatedAt.UnixNano()), Member: bm.ID}
	if err := s.rdb.ZAdd(ctx, bookmarksByEmailKey(bm.Email), z).Err(); err != nil {
		return bm, err
	}
	return bm, nil
}

// ListBookmarks returns a user's bookmarks, newest first.
func (s *RedisStore) ListBookmarks(ctx context.Context, email string) ([]model.Bookmark, error) {
	ids, err := s.rdb.ZRevRange(ctx, bookmarksByEmailKey(email), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, bookmarkKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var bm model.Bookmark
		if err := json.Unmarshal(b, &bm); err != nil {
			return nil, fmt.Errorf("decode bookmark %s: %w", id, err)
		}
		out = append(out, bm)
	}
	return out, nil
}

// DeleteBookmark removes a bookmark after verifying ownership.
func (s *RedisStore) DeleteBookmark(ctx context.Context, id, email string) error {
	b, err := s.rdb.Get(ctx, bookmarkKey(id)).Bytes()
	if err == redis.Nil {
		return ErrBookmarkNotFound
	}
	if err != nil {
		return err
	}
	var bm model.Bookmark
	if err := json.Unmarshal(b, &bm); err != nil {
		return err
	}
	if bm.Email != email {
		return ErrBookmarkNotFound
	}
	if err := s.rdb.Del(ctx, bookmarkKey(id)).Err(); err != nil {
		return err
	}
	return s.rdb.ZRem(ctx, bookmarksByEmailKey(email), id).Err()
}

// GetSettings loads a user's settings, falling back to documented defaults
// when nothing was ever saved.
func (s *RedisStore) GetSettings(ctx context.Context, email string) (model.Settings, error) {
	b, err := s.rdb.Get(ctx, settingsKey(email)).Bytes()
	if err == redis.Nil {
		return model.DefaultSettings(email), nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	st := model.DefaultSettings(email)
	if err := json.Unmarshal(b, &st); err != nil {
		return model.Settings{}, err
	}
	return st, nil
}

// SaveSettings upserts a user's settings keyed by email.
func (s *RedisStore) SaveSettings(ctx context.Context, st model.Settings) error {
	if st.Topics == nil {
		st.Topics = []string{}
	}
	if st.Tags == nil {
		st.Tags = []string{}
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, settingsKey(st.Email), b, 0).Err()
}
