package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/session"
	redis_session "github.com/minjae-dev/webreader/session/redis"
)

func newTestStore(t *testing.T) (session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redis_session.NewStore(client, session.TTLs{
		Content: time.Hour,
		Pending: 5 * time.Minute,
		News:    time.Hour,
	}), mr
}

// fakeLLM scripts the provider boundary for engine and resolver tests.
type fakeLLM struct {
	answer         string
	answerErr      error
	classification models.Classification
	classifyErr    error
	classifyCalled bool
	classifyCtx    string
	articles       []models.Article
}

func (f *fakeLLM) AnswerFromDocument(ctx context.Context, document, query string) (string, error) {
	return f.answer, f.answerErr
}

func (f *fakeLLM) ClassifyQuery(ctx context.Context, query, contextText string) (models.Classification, error) {
	f.classifyCalled = true
	f.classifyCtx = contextText
	return f.classification, f.classifyErr
}

func (f *fakeLLM) GenerateArticles(ctx context.Context, keyword string, count int) ([]models.Article, error) {
	return f.articles, nil
}

func (f *fakeLLM) SummarizeText(ctx context.Context, text, language string) (string, error) {
	return f.answer, f.answerErr
}

func TestAnswerNavigationToMatchedLink(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	engine := &Engine{Sessions: store, LLM: &fakeLLM{}}
	id, err := engine.LoadContent(ctx, "The weather today is sunny", []models.Link{
		{ID: 1, Text: "Weather", URL: "/w"},
	})
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}

	result, err := engine.Answer(ctx, id, "Weather 보여줘")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Type != models.ResultNavigation {
		t.Fatalf("expected navigation, got %s", result.Type)
	}
	if result.URL != "/w" {
		t.Fatalf("expected /w, got %q", result.URL)
	}
}

func TestAnswerNavigationNoMatchingLink(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	engine := &Engine{Sessions: store, LLM: &fakeLLM{}}
	id, err := engine.LoadContent(ctx, "text", []models.Link{
		{ID: 1, Text: "주식 시세", URL: "/stocks"},
	})
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}

	result, err := engine.Answer(ctx, id, "zzzz qqqq 보여줘")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Type != models.ResultNavigation {
		t.Fatalf("expected navigation, got %s", result.Type)
	}
	if result.URL != "" {
		t.Fatalf("expected no url, got %q", result.URL)
	}
	if result.Response != "이동할 링크가 없습니다." {
		t.Fatalf("unexpected message: %q", result.Response)
	}
}

func TestAnswerReturnsModelReplyVerbatim(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	llm := &fakeLLM{answer: "오늘 날씨는 맑습니다."}
	engine := &Engine{Sessions: store, LLM: llm}
	id, _ := engine.LoadContent(ctx, "The weather today is sunny", nil)

	result, err := engine.Answer(ctx, id, "오늘 날씨 어때?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Type != models.ResultSummary {
		t.Fatalf("expected summary, got %s", result.Type)
	}
	if result.Response != "오늘 날씨는 맑습니다." {
		t.Fatalf("expected verbatim answer, got %q", result.Response)
	}
	if result.PendingSessionID != "" {
		t.Fatal("no pending session should be created for a known answer")
	}
}

func TestAnswerUnknownCreatesPendingQuery(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	llm := &fakeLLM{answer: models.NotInDocumentMessage}
	engine := &Engine{Sessions: store, LLM: llm}
	id, _ := engine.LoadContent(ctx, "document text", nil)

	result, err := engine.Answer(ctx, id, "양자컴퓨터가 뭐야?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Type != models.ResultConfirm {
		t.Fatalf("expected confirm, got %s", result.Type)
	}
	if result.PendingSessionID == "" {
		t.Fatal("expected a pending session id")
	}
	if result.Response != models.NotInDocumentMessage {
		t.Fatalf("expected canonical message, got %q", result.Response)
	}

	pending, err := store.GetPending(ctx, result.PendingSessionID)
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if pending.Query != "양자컴퓨터가 뭐야?" {
		t.Fatalf("pending query should be the original question, got %q", pending.Query)
	}
}

func TestAnswerContentNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	engine := &Engine{Sessions: store, LLM: &fakeLLM{}}
	_, err := engine.Answer(context.Background(), "missing", "질문")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAnswerModelFailure(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	llm := &fakeLLM{answerErr: errors.New("rate limited")}
	engine := &Engine{Sessions: store, LLM: llm}
	id, _ := engine.LoadContent(ctx, "text", nil)

	if _, err := engine.Answer(ctx, id, "질문"); err == nil {
		t.Fatal("expected error from model failure")
	}
}
