package server

import (
	"strings"
	"time"

	"auction-site/internal/auth"
	"auction-site/internal/biddingerrors"
	"auction-site/services/bidding/handler"
	"auction-site/services/bidding/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// TokenValidator checks a session token and returns its claims
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Set("request_id", requestID)
	c.Header(RequestIDHeader, requestID)

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": requestID,
	}
	if userID := helpers.CurrentUserID(c); userID != 0 {
		fields["user_id"] = userID
	}
	utils.Info("HTTP Request", fields)
}

// AuthMiddleware identifies the user from the session cookie or a Bearer
// token. Requests without a valid token continue anonymously.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw, _ = c.Cookie(handler.SessionCookie)
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			utils.Debug("AuthMiddleware: rejected token", map[string]any{"error": err.Error(), "path": c.Request.URL.Path})
			c.Next()
			return
		}

		userID, _ := claims.UserID()
		helpers.SetCurrentUser(c, userID, claims.Username)
		c.Next()
	}
}

// RequireAuth refuses anonymous requests before any handler runs
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if helpers.CurrentUserID(c) == 0 {
			helpers.RespondError(c, "RequireAuth", biddingerrors.ErrUnauthenticated, map[string]any{"path": c.Request.URL.Path})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
