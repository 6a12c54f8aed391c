package redis_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/session"
)

func newTestStore(t *testing.T) (session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, session.TTLs{
		Content: time.Hour,
		Pending: 5 * time.Minute,
		News:    time.Hour,
	}), mr
}

func TestContentRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	content := models.ContentSession{
		Text:  "The weather today is sunny",
		Links: []models.Link{{ID: 1, Text: "Weather", URL: "/w"}},
	}

	id, err := store.SaveContent(ctx, content)
	if err != nil {
		t.Fatalf("SaveContent: %v", err)
	}
	if id == "" {
		t.Fatal("expected a session id")
	}

	got, err := store.GetContent(ctx, id)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if got.Text != content.Text || len(got.Links) != 1 || got.Links[0].URL != "/w" {
		t.Fatalf("unexpected content: %+v", got)
	}
}

func TestContentNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetContent(context.Background(), "nope")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestContentExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveContent(ctx, models.ContentSession{Text: "hello"})
	if err != nil {
		t.Fatalf("SaveContent: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, err = store.GetContent(ctx, id)
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expired session should be indistinguishable from not found, got %v", err)
	}
}

func TestPendingLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.SavePending(ctx, "양자컴퓨터가 뭐야?")
	if err != nil {
		t.Fatalf("SavePending: %v", err)
	}

	pending, err := store.GetPending(ctx, id)
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if pending.Query != "양자컴퓨터가 뭐야?" {
		t.Fatalf("unexpected query: %q", pending.Query)
	}

	if err := store.DeletePending(ctx, id); err != nil {
		t.Fatalf("DeletePending: %v", err)
	}
	if _, err := store.GetPending(ctx, id); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// deleting a missing key is idempotent
	if err := store.DeletePending(ctx, id); err != nil {
		t.Fatalf("second DeletePending: %v", err)
	}
}

func TestPendingExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.SavePending(ctx, "question")
	if err != nil {
		t.Fatalf("SavePending: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	if _, err := store.GetPending(ctx, id); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestNewsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	articles := []models.Article{
		{Title: "기사 A", URL: "https://news.naver.com/1"},
		{Title: "기사 B", URL: "https://news.naver.com/2"},
	}

	id, err := store.SaveNews(ctx, articles)
	if err != nil {
		t.Fatalf("SaveNews: %v", err)
	}

	got, err := store.GetNews(ctx, id)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(got) != 2 || got[1].Title != "기사 B" {
		t.Fatalf("unexpected articles: %+v", got)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := store.SavePending(ctx, "q")
		if err != nil {
			t.Fatalf("SavePending: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}
