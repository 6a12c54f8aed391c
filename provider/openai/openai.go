package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/minjae-dev/webreader/models"
)

const (
	openaiAPIURL = "https://api.openai.com/v1/chat/completions"
)

// client implements the provider interface using OpenAI's API
type client struct {
	apiKey          string
	completionModel string
	classifyModel   string
	temperature     float64
	maxTokens       int
	httpClient      *http.Client
	baseURL         string
}

// Message represents a message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request represents a request to the OpenAI API
type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// response represents a response from the OpenAI API
type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, completionModel, classifyModel string, temperature float64, maxTokens int, timeout time.Duration) *client {
	return &client{
		apiKey:          apiKey,
		completionModel: completionModel,
		classifyModel:   classifyModel,
		temperature:     temperature,
		maxTokens:       maxTokens,
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         openaiAPIURL,
	}
}

// AnswerFromDocument answers a query grounded only in the supplied document.
// The system instruction pins the canonical refusal sentence so the engine
// can detect "not in the document" replies by substring.
func (c *client) AnswerFromDocument(ctx context.Context, document, query string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"너는 사용자가 제공한 문서를 기반으로만 답해야 한다. "+
			"필요하면 간단히 요약해서 알려줘. "+
			"문서에 없는 내용을 묻거나, 외부 자료의 추천이나 검색을 요청하면 "+
			"반드시 다음 문장으로만 답해라:\n%s",
		models.NotInDocumentMessage)

	userPrompt := fmt.Sprintf(
		"다음은 사용자가 제공한 문서입니다:\n\n%s\n\n이 문서를 참고해서, 사용자의 질문에 답해줘.\n\n질문: %s",
		document, query)

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	return c.sendRequest(ctx, c.completionModel, messages)
}

// ClassifyQuery labels the pending query as term vs article and extracts a
// search keyword. The reply must be the two-field JSON object and nothing
// else; anything unparsable is a hard error for the request.
func (c *client) ClassifyQuery(ctx context.Context, query, contextText string) (models.Classification, error) {
	systemPrompt := "너는 사용자의 질문을 'term' 또는 'article'로 분류해야 한다.\n" +
		"- 특정 개념, 용어, 정의, 의미 → 'term'\n" +
		"- 관련 기사, 뉴스, 사건, 소식 → 'article'\n" +
		"분류 후 반드시 핵심 검색어(keyword)도 뽑아라.\n" +
		"출력 형식:\n" +
		"{ \"category\": \"term\", \"keyword\": \"검색 키워드\" }\n" +
		"또는\n" +
		"{ \"category\": \"article\", \"keyword\": \"검색 키워드\" }\n" +
		"만약 'term'이면 context는 무시하고 질문에서만 keyword를 뽑아라.\n" +
		"만약 'article'이면 질문과 context를 모두 고려해서 keyword를 뽑되, context의 핵심 주제를 우선하라.\n" +
		"만약 사용자가 '이 기사'라고 말하면, 반드시 제공된 context(본문)을 '이 기사'로 간주하라.\n" +
		"절대 설명 문장이나 추가 텍스트는 쓰지 마라. JSON만 출력."

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("질문: %s\n\n본문: %s", query, contextText)},
	}

	responseStr, err := c.sendRequest(ctx, c.classifyModel, messages)
	if err != nil {
		return models.Classification{}, err
	}

	var classification models.Classification
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseStr)), &classification); err != nil {
		return models.Classification{}, fmt.Errorf("%w: %v", models.ErrClassificationParse, err)
	}
	return classification, nil
}

// GenerateArticles asks the model for a JSON array of plausible news articles
// about the keyword. A reply that fails to parse is logged and treated as an
// empty result, matching the search API's "no hits" shape.
func (c *client) GenerateArticles(ctx context.Context, keyword string, count int) ([]models.Article, error) {
	userPrompt := fmt.Sprintf(
		"'%s'와 관련된 최신 뉴스를 %d개 찾아서 알려줘.\n"+
			"- 반드시 JSON 배열 형식으로만 출력해야 한다.\n"+
			"- 출력 예시:\n"+
			"[\n"+
			"  {\"title\": \"기사 제목1\", \"url\": \"https://news.naver.com/1\"},\n"+
			"  {\"title\": \"기사 제목2\", \"url\": \"https://news.naver.com/2\"}\n"+
			"]\n"+
			"- url은 실제 뉴스 기사처럼 보이는 형식(예: https://news.naver.com/...)으로 만들어야 한다.\n"+
			"- 절대 설명 문장이나 추가 텍스트는 쓰지 마라. JSON만 출력.",
		keyword, count)

	messages := []Message{
		{Role: "system", Content: "너는 뉴스 추천 시스템이다."},
		{Role: "user", Content: userPrompt},
	}

	responseStr, err := c.sendRequest(ctx, c.classifyModel, messages)
	if err != nil {
		return nil, err
	}

	var articles []models.Article
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseStr)), &articles); err != nil {
		log.Printf("[OPENAI] article generation reply is not valid JSON: %v", err)
		return nil, nil
	}
	if len(articles) > count {
		articles = articles[:count]
	}
	return articles, nil
}

// SummarizeText summarizes the text with a language-specific prompt.
func (c *client) SummarizeText(ctx context.Context, text, language string) (string, error) {
	prompts := map[string]string{
		"ko": "당신은 뉴스 분석 AI입니다. 입력된 텍스트를 분석하여 다음과 같이 응답해주세요:\n\n" +
			"**케이스 1: 검색 결과 페이지인 경우**\n" +
			"- 텍스트에 \"검색결과\", \"관련도순\", \"최신순\" 등이 포함되어 있으면\n" +
			"- \"[주제] 관련 뉴스를 검색하면 다음과 같은 헤드라인들을 볼 수 있습니다:\"로 시작\n" +
			"- 발견된 뉴스 헤드라인들을 \"첫째, [제목] - [한 줄 요약]\" \"둘째, [제목] - [한 줄 요약]\" 형식으로 순서대로 나열\n" +
			"- \"더 자세한 정보가 필요한 뉴스가 있다면 해당 뉴스 내용을 알려주세요.\"로 마무리\n\n" +
			"**케이스 2: 구체적인 뉴스 기사인 경우**\n" +
			"- 특정 언론사 기사 내용이 포함되어 있으면\n" +
			"- 기사의 핵심 내용을 3-4문장으로 간결하게 요약\n" +
			"- 5W1H (누가, 언제, 어디서, 무엇을, 왜, 어떻게)를 중심으로 정리\n" +
			"- 중요한 키워드와 수치는 정확히 포함\n\n" +
			"현재 입력된 텍스트를 분석하여 적절한 형식으로 응답해주세요.",
		"en": "You are a news analysis AI. Summarize the input text in 3-4 concise sentences, " +
			"organized around who, what, when, where, why and how. Keep key terms and figures exact.",
	}

	systemPrompt, ok := prompts[language]
	if !ok {
		systemPrompt = prompts["ko"]
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	}

	return c.sendRequest(ctx, c.completionModel, messages)
}

// sendRequest sends a request to the OpenAI API
func (c *client) sendRequest(ctx context.Context, model string, messages []Message) (string, error) {
	requestBody := request{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var openaiResp response
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(openaiResp.Choices[0].Message.Content), nil
}
