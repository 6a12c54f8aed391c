package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minjae-dev/webreader/internal/assistant"
	"github.com/minjae-dev/webreader/internal/fetch"
	"github.com/minjae-dev/webreader/models"
)

// ContentHandler exposes the content session lifecycle: load (or server-side
// fetch), ask, and the yes/no follow-up.
type ContentHandler struct {
	Engine   *assistant.Engine
	Resolver *assistant.Resolver
	Fetcher  *fetch.Fetcher
}

func (h *ContentHandler) Register(g *echo.Group) {
	g.POST("/load", h.load)
	g.POST("/fetch", h.fetch)
	g.POST("/ask", h.ask)
	g.POST("/yesno", h.yesno)
}

func (h *ContentHandler) load(c echo.Context) error {
	var req struct {
		InnerText string        `json:"inner_text"`
		Links     []models.Link `json:"links"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.InnerText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "본문 텍스트가 비어있습니다.")
	}

	id, err := h.Engine.LoadContent(c.Request().Context(), req.InnerText, req.Links)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":            "Content loaded successfully",
		"links_count":        len(req.Links),
		"context_session_id": id,
	})
}

func (h *ContentHandler) fetch(c echo.Context) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.URL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url이 비어있습니다.")
	}

	content, err := h.Fetcher.Fetch(c.Request().Context(), req.URL)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "페이지를 가져오지 못했습니다.")
	}

	id, err := h.Engine.LoadContent(c.Request().Context(), content.Text, content.Links)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":            "Content loaded successfully",
		"url":                req.URL,
		"links_count":        len(content.Links),
		"context_session_id": id,
	})
}

func (h *ContentHandler) ask(c echo.Context) error {
	sessionID := c.QueryParam("context_session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "context_session_id가 필요합니다.")
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "질문이 비어있습니다.")
	}

	result, err := h.Engine.Answer(c.Request().Context(), sessionID, req.Query)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "세션이 만료되었거나 존재하지 않습니다. 콘텐츠를 다시 로드해주세요.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "서버 내부 오류가 발생했습니다.")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ContentHandler) yesno(c echo.Context) error {
	pendingID := c.QueryParam("pending_session_id")
	contentID := c.QueryParam("context_session_id")
	if pendingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pending_session_id가 필요합니다.")
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Answer) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "답변이 비어있습니다.")
	}

	result, err := h.Resolver.Resolve(c.Request().Context(), req.Answer, pendingID, contentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "서버 내부 오류가 발생했습니다.")
	}
	return c.JSON(http.StatusOK, result)
}
