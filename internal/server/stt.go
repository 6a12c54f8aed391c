package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minjae-dev/webreader/stt/clova"
)

// STTHandler exposes speech recognition over the Clova boundary.
type STTHandler struct {
	Clova       *clova.Client
	MaxFileSize int64
	MinFileSize int64
}

func (h *STTHandler) Register(g *echo.Group) {
	g.POST("/recognize", h.recognize)
}

func (h *STTHandler) recognize(c echo.Context) error {
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = "Kor"
	}
	if !clova.ValidLanguage(lang) {
		return echo.NewHTTPError(http.StatusBadRequest, "지원되지 않는 언어입니다. 지원 언어: Kor, Eng, Jpn, Chn")
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "오디오 파일이 필요합니다.")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "오디오 파일을 읽을 수 없습니다.")
	}
	defer src.Close()

	audio, err := io.ReadAll(io.LimitReader(src, h.MaxFileSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "오디오 파일을 읽을 수 없습니다.")
	}

	switch {
	case len(audio) == 0:
		return echo.NewHTTPError(http.StatusBadRequest, "비어있는 오디오 파일입니다.")
	case int64(len(audio)) > h.MaxFileSize:
		return echo.NewHTTPError(http.StatusBadRequest, "파일 크기가 너무 큽니다. (최대 50MB)")
	case int64(len(audio)) < h.MinFileSize:
		return echo.NewHTTPError(http.StatusBadRequest, "음성이 너무 짧습니다. 최소 1초 이상 녹음해주세요.")
	}

	text, err := h.Clova.Recognize(c.Request().Context(), audio, lang)
	if err != nil {
		var recErr *clova.RecognizeError
		if errors.As(err, &recErr) {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"success": false,
				"error":   recErr.Message,
				"code":    recErr.Code,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "서버 내부 오류가 발생했습니다.")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"text":    text,
	})
}
