package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minjae-dev/webreader/config"
	"github.com/minjae-dev/webreader/internal/assistant"
	"github.com/minjae-dev/webreader/internal/fetch"
	"github.com/minjae-dev/webreader/news"
	"github.com/minjae-dev/webreader/provider"
	"github.com/minjae-dev/webreader/session"
	redis_session "github.com/minjae-dev/webreader/session/redis"
	"github.com/minjae-dev/webreader/stt/clova"
)

const serviceVersion = "2.0.0"

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "webreader_http_requests_total",
	Help: "HTTP requests by path and status code.",
}, []string{"path", "code"})

// Run wires the session store, LLM provider, news backend and handlers into
// an echo server and blocks serving it.
func Run(cfg *config.Config) error {
	e := newEcho()

	ctx := context.Background()
	client, err := redis_session.Conn(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
	if err != nil {
		return fmt.Errorf("redis connection failed (%s): %w", cfg.Redis.Addr(), err)
	}
	sessions := redis_session.NewStore(client, session.TTLs{
		Content: cfg.Sessions.ContentTTL,
		Pending: cfg.Sessions.PendingTTL,
		News:    cfg.Sessions.NewsTTL,
	})

	if err := cfg.OpenAI.Validate(); err != nil {
		return err
	}
	llm, err := provider.NewProvider(provider.OpenAI, cfg.OpenAI)
	if err != nil {
		return err
	}

	searcher := news.NewSearcher(cfg.Naver, llm)
	if cfg.Naver.HasNewsCredentials() {
		log.Printf("[SERVER] news backend: naver open api")
	} else {
		log.Printf("[SERVER] news backend: model-generated fallback")
	}

	engine := &assistant.Engine{Sessions: sessions, LLM: llm}
	resolver := &assistant.Resolver{Sessions: sessions, LLM: llm, News: searcher, DictURL: cfg.Naver.DictURL}
	selector := &assistant.Selector{Sessions: sessions}

	ch := &ContentHandler{Engine: engine, Resolver: resolver, Fetcher: fetch.NewFetcher(15 * time.Second)}
	ch.Register(e.Group("/content"))

	nh := &NewsHandler{Selector: selector}
	nh.Register(e.Group("/news"))

	sh := &SummaryHandler{LLM: llm, Languages: cfg.Summary.Languages}
	sh.Register(e.Group("/summary"))

	if cfg.Naver.STTClientID != "" && cfg.Naver.STTClientSecret != "" {
		th := &STTHandler{
			Clova:       clova.NewClient(cfg.Naver.STTClientID, cfg.Naver.STTClientSecret, cfg.STT.Endpoint, cfg.OpenAI.Timeout),
			MaxFileSize: cfg.STT.MaxFileSize,
			MinFileSize: cfg.STT.MinFileSize,
		}
		th.Register(e.Group("/stt"))
	} else {
		log.Printf("[SERVER] stt credentials not configured, /stt routes disabled")
	}

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8000"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			requestsTotal.WithLabelValues(c.Path(), fmt.Sprint(c.Response().Status)).Inc()
			return err
		}
	})

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":   "ok",
			"service":  "webreader",
			"version":  serviceVersion,
			"features": []string{"content", "news", "summary", "stt"},
		})
	})

	return e
}
