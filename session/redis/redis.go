package redis_session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/session"
)

const (
	contentKeyPrefix = "content:"
	pendingKeyPrefix = "pending:"
	newsKeyPrefix    = "news:"
)

// Conn opens a Redis client and verifies the connection with a ping.
func Conn(ctx context.Context, host, port, pass string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("expected PONG, got %s", pong)
	}

	return client, nil
}

// store implements session.Store on a single Redis client. Payloads are JSON
// under prefixed keys; per-key SET-with-expiry / GET / DEL are the only
// operations, so no locking discipline is needed beyond Redis itself.
type store struct {
	client *redis.Client
	ttls   session.TTLs
}

func NewStore(client *redis.Client, ttls session.TTLs) session.Store {
	return &store{client: client, ttls: ttls}
}

func (s *store) SaveContent(ctx context.Context, content models.ContentSession) (string, error) {
	id := uuid.NewString()
	if err := s.set(ctx, contentKeyPrefix+id, content, s.ttls.Content); err != nil {
		return "", err
	}
	return id, nil
}

func (s *store) GetContent(ctx context.Context, id string) (models.ContentSession, error) {
	var content models.ContentSession
	if err := s.get(ctx, contentKeyPrefix+id, &content); err != nil {
		return models.ContentSession{}, err
	}
	return content, nil
}

func (s *store) SavePending(ctx context.Context, query string) (string, error) {
	id := uuid.NewString()
	if err := s.set(ctx, pendingKeyPrefix+id, models.PendingQuery{Query: query}, s.ttls.Pending); err != nil {
		return "", err
	}
	return id, nil
}

func (s *store) GetPending(ctx context.Context, id string) (models.PendingQuery, error) {
	var pending models.PendingQuery
	if err := s.get(ctx, pendingKeyPrefix+id, &pending); err != nil {
		return models.PendingQuery{}, err
	}
	return pending, nil
}

func (s *store) DeletePending(ctx context.Context, id string) error {
	return s.client.Del(ctx, pendingKeyPrefix+id).Err()
}

func (s *store) SaveNews(ctx context.Context, articles []models.Article) (string, error) {
	id := uuid.NewString()
	if err := s.set(ctx, newsKeyPrefix+id, articles, s.ttls.News); err != nil {
		return "", err
	}
	return id, nil
}

func (s *store) GetNews(ctx context.Context, id string) ([]models.Article, error) {
	var articles []models.Article
	if err := s.get(ctx, newsKeyPrefix+id, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *store) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *store) get(ctx context.Context, key string, out any) error {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ErrSessionNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(val), out)
}
