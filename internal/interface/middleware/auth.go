package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/pkg/helpers"
	"github.com/devconnector/devconnector-api/pkg/response"
)

// CtxUserIDKey is the gin context key carrying the authenticated user id.
// The attachment lives only for the current request.
const CtxUserIDKey = "userID"

// TokenHeader is the header clients present their session token in.
const TokenHeader = "x-auth-token"

// Auth reads the token header, verifies it and injects the user id into the
// request context. The rejection reason (malformed, tampered, expired) is
// logged but collapsed to a single message for clients.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.AbortMsg(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Debug("token rejected")
			}
			response.AbortMsg(c, http.StatusUnauthorized, "Token is not valid")
			return
		}
		c.Set(CtxUserIDKey, claims.User.ID)
		c.Next()
	}
}
