package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"visual-library-backend/internal/models"
)

// CORS echoes allowed origins back to the browser and answers preflight
// requests. An entry of "*" allows any origin. Requests without an Origin
// header pass through untouched.
func CORS(acceptedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(acceptedOrigins))
	for _, o := range acceptedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		ok := allowed["*"] || allowed[origin]
		if ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			if !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
					Error:   "forbidden",
					Message: fmt.Sprintf("origin %s is not allowed", origin),
				})
				return
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
