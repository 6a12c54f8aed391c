package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/minjae-dev/webreader/internal/assistant"
	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/session"
	redis_session "github.com/minjae-dev/webreader/session/redis"
)

func newNewsHandler(t *testing.T) (*NewsHandler, session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redis_session.NewStore(client, session.TTLs{News: time.Hour})
	return &NewsHandler{Selector: &assistant.Selector{Sessions: store}}, store
}

func TestSelectSecondArticle(t *testing.T) {
	handler, store := newNewsHandler(t)
	id, _ := store.SaveNews(context.Background(), []models.Article{
		{Title: "A", URL: "/a"},
		{Title: "B", URL: "/b"},
	})

	ctx, rec := postJSON(t, "/news/select", "", map[string]string{
		"news_session_id": id,
		"query":           "두 번째 기사",
	})

	if err := handler.selectArticle(ctx); err != nil {
		t.Fatalf("select: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result models.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Type != models.ResultNavigation || result.URL != "/b" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSelectExpiredNewsSession(t *testing.T) {
	handler, _ := newNewsHandler(t)

	ctx, _ := postJSON(t, "/news/select", "", map[string]string{
		"news_session_id": "gone",
		"query":           "첫 번째",
	})

	err := handler.selectArticle(ctx)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestSelectMissingSessionParam(t *testing.T) {
	handler, _ := newNewsHandler(t)

	ctx, _ := postJSON(t, "/news/select", "", nil)
	err := handler.selectArticle(ctx)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
