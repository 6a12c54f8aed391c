package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/minjae-dev/webreader/provider"
)

// SummaryHandler serves standalone text summarization.
type SummaryHandler struct {
	LLM       provider.Provider
	Languages []string
}

// SummaryResponse mirrors the structured success/failure shape clients
// expect: collaborator failures come back as success=false, not a 5xx.
type SummaryResponse struct {
	Success          bool    `json:"success"`
	OriginalText     string  `json:"original_text,omitempty"`
	Summary          string  `json:"summary,omitempty"`
	OriginalLength   int     `json:"original_length,omitempty"`
	SummaryLength    int     `json:"summary_length,omitempty"`
	CompressionRatio float64 `json:"compression_ratio,omitempty"`
	Error            string  `json:"error,omitempty"`
}

func (h *SummaryHandler) Register(g *echo.Group) {
	g.POST("/text", h.summarize)
	g.GET("/status", h.status)
}

func (h *SummaryHandler) summarize(c echo.Context) error {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "요약할 텍스트가 비어있습니다.")
	}
	if req.Language == "" {
		req.Language = "ko"
	}
	if !h.validLanguage(req.Language) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("지원하지 않는 요약 언어입니다. 사용 가능한 언어: %v", h.Languages))
	}

	summary, err := h.LLM.SummarizeText(c.Request().Context(), req.Text, req.Language)
	if err != nil {
		log.Printf("[SUMMARY] summarization failed: %v", err)
		return c.JSON(http.StatusOK, SummaryResponse{
			Success: false,
			Error:   "요약 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		})
	}

	originalLen := utf8.RuneCountInString(req.Text)
	summaryLen := utf8.RuneCountInString(summary)
	ratio := 0.0
	if originalLen > 0 {
		ratio = float64(originalLen-summaryLen) / float64(originalLen) * 100
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Success:          true,
		OriginalText:     req.Text,
		Summary:          summary,
		OriginalLength:   originalLen,
		SummaryLength:    summaryLen,
		CompressionRatio: ratio,
	})
}

func (h *SummaryHandler) status(c echo.Context) error {
	available := h.LLM != nil
	status := "ok"
	if !available {
		status = "unavailable"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":                   status,
		"openai_service_available": available,
	})
}

func (h *SummaryHandler) validLanguage(lang string) bool {
	if len(h.Languages) == 0 {
		return lang == "ko"
	}
	for _, l := range h.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
