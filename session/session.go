package session

import (
	"context"
	"time"

	"github.com/minjae-dev/webreader/models"
)

// Store is the keyed TTL store behind the three session namespaces. Session
// ids are generated fresh on every save and are the sole key under which the
// payload is retrievable; an expired session and a never-created one both
// surface as models.ErrSessionNotFound.
type Store interface {
	SaveContent(ctx context.Context, content models.ContentSession) (string, error)
	GetContent(ctx context.Context, id string) (models.ContentSession, error)

	SavePending(ctx context.Context, query string) (string, error)
	GetPending(ctx context.Context, id string) (models.PendingQuery, error)
	// DeletePending is idempotent; deleting a missing key is not an error.
	DeletePending(ctx context.Context, id string) error

	SaveNews(ctx context.Context, articles []models.Article) (string, error)
	GetNews(ctx context.Context, id string) ([]models.Article, error)
}

// TTLs carries the expiry of each namespace.
type TTLs struct {
	Content time.Duration
	Pending time.Duration
	News    time.Duration
}

// DefaultTTLs mirrors the service defaults: long-lived content and news
// sessions, a short-lived pending confirmation window.
func DefaultTTLs() TTLs {
	return TTLs{
		Content: time.Hour,
		Pending: 5 * time.Minute,
		News:    time.Hour,
	}
}
