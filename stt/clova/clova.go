// Package clova is a thin client for the Naver Clova speech recognition API,
// translating its error codes into user-facing messages.
package clova

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://naveropenapi.apigw.ntruss.com/recog/v1/stt"

// SupportedLanguages are the language codes Clova accepts.
var SupportedLanguages = []string{"Kor", "Eng", "Jpn", "Chn"}

// RecognizeError is a Clova-side recognition failure with a user-facing
// message. Distinguished from transport errors so handlers can render it as
// a 200 with success=false, the way the original error codes were surfaced.
type RecognizeError struct {
	Code    string
	Message string
}

func (e *RecognizeError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

type Client struct {
	ClientID     string
	ClientSecret string
	Endpoint     string
	HTTPClient   *http.Client
}

func NewClient(clientID, clientSecret, endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoint,
		HTTPClient:   &http.Client{Timeout: timeout},
	}
}

// ValidLanguage reports whether lang is a supported Clova language code.
func ValidLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

type sttResponse struct {
	Text  string `json:"text"`
	Error struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	} `json:"error"`
}

// Recognize sends raw audio bytes to Clova and returns the recognized text.
func (c *Client) Recognize(ctx context.Context, audio []byte, lang string) (string, error) {
	reqURL := fmt.Sprintf("%s?lang=%s", c.Endpoint, lang)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-NCP-APIGW-API-KEY-ID", c.ClientID)
	req.Header.Set("X-NCP-APIGW-API-KEY", c.ClientSecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed sttResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("clova returned status %d: %s", resp.StatusCode, string(body))
	}

	if resp.StatusCode != http.StatusOK || parsed.Error.ErrorCode != "" {
		return "", translateError(parsed.Error.ErrorCode, string(body))
	}

	return strings.TrimSpace(parsed.Text), nil
}

// translateError maps Clova error codes onto user-facing messages.
func translateError(code, detail string) error {
	switch {
	case strings.Contains(code, "STT007") || strings.Contains(detail, "STT007"):
		return &RecognizeError{
			Code:    "AUDIO_TOO_SHORT",
			Message: "음성이 너무 짧거나 인식할 수 없습니다. 더 길게 말씀해주세요.",
		}
	case strings.Contains(code, "STT006") || strings.Contains(detail, "STT006"):
		return &RecognizeError{
			Code:    "UNSUPPORTED_FORMAT",
			Message: "지원하지 않는 오디오 형식입니다.",
		}
	default:
		return fmt.Errorf("clova recognition failed: %s", detail)
	}
}
