package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf}).WithComponent(ComponentAuth)

	l.Info("signed in", FieldUserID, "u1")
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "auth", rec[FieldComponent])
	assert.Equal(t, "u1", rec[FieldUserID])
	assert.Equal(t, "signed in", rec["msg"])
}

func TestMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf})

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/ok", func(c *gin.Context) {
		assert.Same(t, l, FromContext(c))
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok?x=1", "/missing", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	var levels []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, ComponentHTTP, rec[FieldComponent])
		levels = append(levels, rec["level"].(string))
	}
	assert.Equal(t, []string{"INFO", "WARN", "ERROR"}, levels)
}

func TestMiddlewareRedactsCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/api/transactions", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/auth/callback/google", func(c *gin.Context) { c.Status(http.StatusFound) })

	for _, path := range []string{
		"/api/transactions?token=eyJSECRETJWT&x=1",
		"/api/auth/callback/google?code=4%2FSECRETCODE&state=SECRETSTATE",
	} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	for _, secret := range []string{"eyJSECRETJWT", "SECRETCODE", "SECRETSTATE"} {
		assert.NotContains(t, out, secret)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "token=REDACTED&x=1", rec[FieldQuery])
}

func TestRedactQuery(t *testing.T) {
	assert.Equal(t, "", redactQuery(""))
	assert.Equal(t, "page=2", redactQuery("page=2"))
	assert.Equal(t, "Token=REDACTED", redactQuery("Token=abc"))
	assert.Equal(t, "", redactQuery("token=%zz"))
}
