package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minjae-dev/webreader/internal/assistant"
	"github.com/minjae-dev/webreader/models"
)

// NewsHandler serves ordinal selection against a stored news session.
type NewsHandler struct {
	Selector *assistant.Selector
}

func (h *NewsHandler) Register(g *echo.Group) {
	g.POST("/select", h.selectArticle)
}

func (h *NewsHandler) selectArticle(c echo.Context) error {
	newsSessionID := c.QueryParam("news_session_id")
	query := c.QueryParam("query")
	if newsSessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "news_session_id가 필요합니다.")
	}

	article, err := h.Selector.Select(c.Request().Context(), newsSessionID, query)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "뉴스 세션이 만료되었거나 기사를 찾을 수 없습니다.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "서버 내부 오류가 발생했습니다.")
	}

	return c.JSON(http.StatusOK, models.Result{
		Type:     models.ResultNavigation,
		Response: fmt.Sprintf("선택하신 기사 → '%s'", article.Title),
		URL:      article.URL,
	})
}
