package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"appdeck/internal/auth"
	"appdeck/internal/models"
)

const ctxUserKey = "appdeck.user"

// requireAuth resolves the bearer token from the Authorization header and
// injects the owning user into the request context. Requests without a valid
// token are rejected with 401 before reaching any handler.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerKey(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Error:     "authentication credentials were not provided",
				ErrorCode: ErrorCodeInvalidToken,
			})
			return
		}

		user, err := s.tokens.Resolve(key)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				s.log.WithError(err).Error("token resolution failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Error:     "invalid token",
				ErrorCode: ErrorCodeInvalidToken,
			})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// bearerKey extracts the token key from an Authorization header. Both
// "Token <key>" and "Bearer <key>" schemes are accepted.
func bearerKey(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	switch parts[0] {
	case "Token", "Bearer":
		return parts[1], true
	}
	return "", false
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

// requestLogger logs each request and feeds the stats tracker.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		s.tracker.Record(status, elapsed)

		entry := s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": elapsed.String(),
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
