package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"booking-server/internal/middleware"
	"booking-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter returns an engine that authenticates every request as userID.
// Zero leaves requests anonymous.
func newRouter(userID uint) *gin.Engine {
	r := gin.New()
	if userID != 0 {
		r.Use(func(c *gin.Context) {
			middleware.SetUserID(c, userID)
			c.Next()
		})
	}
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.ResponseData {
	t.Helper()
	var out utils.ResponseData
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// decodeData re-decodes the data field into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if err := json.Unmarshal(out.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", out.Data, err)
	}
}
