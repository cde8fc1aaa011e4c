package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// JobTokenRequired authenticates job trigger requests with a static bearer
// token. With no token configured the endpoints are closed.
func (s *Server) JobTokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(s.cfg.Server.JobToken)
		if expected == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expected)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// SMSKeyRequired authenticates SMS relay callers with a static key passed in
// the x-api-key header.
func (s *Server) SMSKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(s.cfg.SMS.APIKey)
		if expected == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		key := strings.TrimSpace(c.GetHeader("x-api-key"))
		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
