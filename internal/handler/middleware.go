package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "X-Session-Token"

const ctxToken = "session_token"

// RequireSession rejects requests without a live session token.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetHeader(TokenHeader)
		if _, ok := h.sessions.Snapshot(tok); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(ctxToken, tok)
		c.Next()
	}
}

func token(c *gin.Context) string {
	return c.GetString(ctxToken)
}
