package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lifedrop/lifedrop-backend/internal/identity"
	"github.com/lifedrop/lifedrop-backend/pkg/response"
)

// CtxUserEmailKey is the Gin context key holding the verified caller email.
const CtxUserEmailKey = "userEmail"

// Auth validates the bearer credential in the Authorization header and
// sets the verified email in the Gin context. An absent, malformed, or
// unverifiable credential short-circuits with 401 before any service call.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized access", nil)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized access", nil)
			return
		}
		email, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized access", nil)
			return
		}
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}
