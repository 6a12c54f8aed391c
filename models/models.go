package models

import "errors"

// ErrSessionNotFound is returned when a session key is absent or has expired.
// The store cannot tell the two apart.
var ErrSessionNotFound = errors.New("session not found")

// ErrClassificationParse is returned when the classifier's reply is not the
// expected two-field JSON payload. Fatal for the current request, no retry.
var ErrClassificationParse = errors.New("classification response is not valid JSON")

// Link is a navigable anchor extracted from a loaded page.
type Link struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Article is one news search hit.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentSession holds one page's extracted body text and links.
type ContentSession struct {
	Text  string `json:"text"`
	Links []Link `json:"links"`
}

// PendingQuery is a stashed question whose answer was not in the document,
// awaiting a yes/no confirmation before any further lookup.
type PendingQuery struct {
	Query string `json:"query"`
}

// Classification is the classifier's verdict for a pending query.
type Classification struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

const (
	CategoryTerm    = "term"
	CategoryArticle = "article"
)

// NotInDocumentMarker is the substring the Q&A model is instructed to emit
// when an answer is not contained in the document. Matching on it is what
// turns a reply into a pending follow-up.
const NotInDocumentMarker = "문서에서 찾을 수 없는 내용입니다"

// NotInDocumentMessage is the full canonical refusal sentence, offering to
// search further and prompting for a yes/no confirmation.
const NotInDocumentMessage = "해당 내용은 문서에서 찾을 수 없는 내용입니다. 제가 더 찾아볼까요? (네/아니요로 대답해주세요.)"

// ResultType tags an assistant result so clients can route on it.
type ResultType string

const (
	ResultNavigation ResultType = "navigation"
	ResultSummary    ResultType = "summary"
	ResultConfirm    ResultType = "confirm"
	ResultArticles   ResultType = "articles"
	ResultInfo       ResultType = "info"
	ResultError      ResultType = "error"
)

// Result is the tagged outcome of an assistant operation. Expected outcomes
// (not-found, invalid answer, nothing to navigate to) ride in here as values;
// only collaborator faults surface as Go errors.
type Result struct {
	Type             ResultType `json:"type"`
	Response         string     `json:"response"`
	URL              string     `json:"url,omitempty"`
	Articles         []Article  `json:"articles,omitempty"`
	PendingSessionID string     `json:"pending_session_id,omitempty"`
	NewsSessionID    string     `json:"news_session_id,omitempty"`
}
