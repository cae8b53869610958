package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/config"
	"booking-server/internal/models"
	"booking-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTRefreshSecret: "r", JWTExpirationMinutes: 5, JWTRefreshExpirationHours: 1}
	access, refresh, err := utils.GenerateTokens(&models.User{BaseModel: models.BaseModel{ID: 7}}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/me", AuthMiddleware("s"), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, "%d", id)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + access, http.StatusOK},
		{"lowercase scheme", "bearer " + access, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := serve(r, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK && rec.Body.String() != "7" {
				t.Fatalf("user id = %s", rec.Body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" || rec.Body.String() != generated {
		t.Fatalf("header %q body %q", generated, rec.Body)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	if rec := serve(r, req); rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("incoming id not reused: %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), Recovery(log), Logger(log))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if rec := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil)); rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic status = %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"panic":"kaboom"`) {
		t.Fatalf("panic not logged: %s", buf.String())
	}

	buf.Reset()
	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	out := buf.String()
	for _, want := range []string{`"path":"/ok"`, `"status":204`, `"request_id":`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewRateLimiter(0.001, 2)))
	r.POST("/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(r, req).Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, code)
		}
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("over budget: status = %d", code)
	}
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other client: status = %d", code)
	}
}
