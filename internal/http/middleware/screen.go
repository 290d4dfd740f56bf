package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
)

// ScreenTokenHeader carries the opaque per-screen bearer token issued at
// registration. It is a separate scheme from admin JWT sessions.
const ScreenTokenHeader = "X-Screen-Token"

// ScreenTokenMiddleware resolves the calling device from its token and sets
// "currentScreen" in context. A missing token is invalid input; an unknown
// token is a rejection.
func ScreenTokenMiddleware(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(ScreenTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing screen token"})
			return
		}

		screen, err := store.GetScreenByToken(token)
		if err != nil {
			log.Warn().Err(err).Msg("unknown screen token")
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "screen not found"})
			return
		}
		c.Set("currentScreen", &screen)
		c.Next()
	}
}
