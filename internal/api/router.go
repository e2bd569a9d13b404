package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abhisek/mathgen/internal/logger"
)

const maxBodyBytes = 1 << 20

// NewRouter mounts the generate and health endpoints on a gin engine.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(RequestLogger(log))
	r.Use(corsHeaders())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { write(c, Health()) })
	r.GET("/generate", h.serveGin)
	r.POST("/generate", h.serveGin)
	// Preflight needs a matched route for the cors middleware to answer it.
	r.OPTIONS("/generate", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func (h *Handler) serveGin(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		write(c, Response{StatusCode: http.StatusBadRequest, Body: ErrorBody{Error: "Could not read request body"}})
		return
	}

	query := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	write(c, h.Handle(c.Request.Context(), Request{Body: body, Query: query}))
}

func write(c *gin.Context, resp Response) {
	c.JSON(resp.StatusCode, resp.Body)
}

// corsHeaders sets the fixed cross-origin headers on every response,
// including ones without an Origin header.
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range CORSHeaders {
			c.Header(k, v)
		}
		c.Next()
	}
}

// RequestLogger logs one line per request; level follows the status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
