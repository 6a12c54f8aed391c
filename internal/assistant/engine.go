package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/minjae-dev/webreader/linkmatch"
	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/provider"
	"github.com/minjae-dev/webreader/session"
)

// navigation trigger phrases; a query containing one is routed to the link
// matcher instead of the model.
var navigationTriggers = []string{"보여줘", "show me"}

// Engine answers a single query against a loaded content session. All
// cross-request state lives in the session store, so one Engine value is
// shared across concurrent requests.
type Engine struct {
	Sessions session.Store
	LLM      provider.Provider
}

// LoadContent creates a new content session for the extracted page text and
// links and returns its id.
func (e *Engine) LoadContent(ctx context.Context, text string, links []models.Link) (string, error) {
	return e.Sessions.SaveContent(ctx, models.ContentSession{Text: text, Links: links})
}

// Answer resolves the content session and answers the query. Navigation
// intent goes to the link matcher; everything else is answered by the model
// strictly from the document text. A canonical "not in the document" reply
// creates a pending query session and returns its id for the yes/no
// follow-up.
func (e *Engine) Answer(ctx context.Context, sessionID, query string) (models.Result, error) {
	content, err := e.Sessions.GetContent(ctx, sessionID)
	if err != nil {
		return models.Result{}, fmt.Errorf("content session %s: %w", sessionID, err)
	}

	if hasNavigationIntent(query) {
		if link := linkmatch.BestLink(query, content.Links); link != nil {
			return models.Result{
				Type:     models.ResultNavigation,
				Response: fmt.Sprintf("%s 페이지로 이동합니다.", link.Text),
				URL:      link.URL,
			}, nil
		}
		return models.Result{
			Type:     models.ResultNavigation,
			Response: "이동할 링크가 없습니다.",
		}, nil
	}

	answer, err := e.LLM.AnswerFromDocument(ctx, content.Text, query)
	if err != nil {
		return models.Result{}, fmt.Errorf("document answer: %w", err)
	}

	if strings.Contains(answer, models.NotInDocumentMarker) {
		pendingID, err := e.Sessions.SavePending(ctx, query)
		if err != nil {
			return models.Result{}, fmt.Errorf("save pending query: %w", err)
		}
		return models.Result{
			Type:             models.ResultConfirm,
			Response:         models.NotInDocumentMessage,
			PendingSessionID: pendingID,
		}, nil
	}

	return models.Result{
		Type:     models.ResultSummary,
		Response: answer,
	}, nil
}

func hasNavigationIntent(query string) bool {
	lowered := strings.ToLower(query)
	for _, trigger := range navigationTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}
