package logger

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const contextKey = "logger"

const redacted = "REDACTED"

// sensitiveParams carry session tokens or OAuth grant values.
var sensitiveParams = map[string]bool{
	"token":         true,
	"access_token":  true,
	"id_token":      true,
	"refresh_token": true,
	"code":          true,
	"state":         true,
	"password":      true,
}

// Middleware logs one line per request, at warn for 4xx and error for 5xx,
// and puts the logger into the gin context for handlers.
func Middleware(l *Logger) gin.HandlerFunc {
	httpLog := l.WithComponent(ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(contextKey, l)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		args := []any{
			FieldComponent, httpLog.component,
			FieldMethod, c.Request.Method,
			FieldPath, c.Request.URL.Path,
			FieldStatusCode, status,
			FieldDuration, time.Since(start).Milliseconds(),
			FieldClientIP, c.ClientIP(),
		}
		if q := redactQuery(c.Request.URL.RawQuery); q != "" {
			args = append(args, FieldQuery, q)
		}
		if len(c.Errors) > 0 {
			args = append(args, FieldError, c.Errors.String())
		}
		httpLog.Logger.Log(c.Request.Context(), level, "HTTP request completed", args...)
	}
}

// redactQuery masks the values of sensitive parameters. A query that does
// not parse is dropped.
func redactQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	for key, vs := range values {
		if !sensitiveParams[strings.ToLower(key)] {
			continue
		}
		for i := range vs {
			vs[i] = redacted
		}
	}
	return values.Encode()
}

// FromContext returns the request logger, or the slog default.
func FromContext(c *gin.Context) *Logger {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*Logger); ok {
			return l
		}
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}
