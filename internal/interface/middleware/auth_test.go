package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lifedrop/lifedrop-backend/internal/testutil"
)

func authTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	verifier := &testutil.StaticVerifier{Tokens: map[string]string{
		"good-token": "donor@example.com",
	}}
	e.GET("/whoami", Auth(verifier), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserEmailKey))
	})
	return e
}

func TestAuthRejects(t *testing.T) {
	e := authTestEngine()

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no scheme", "good-token"},
		{"wrong scheme", "Basic good-token"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer forged"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthSetsVerifiedEmail(t *testing.T) {
	e := authTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "donor@example.com" {
		t.Errorf("context email = %q, want donor@example.com", got)
	}
}
