package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/castell-digital/marquee/internal/http/middleware"
	"github.com/castell-digital/marquee/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

// Handler signatures used by endpoint modules. Handlers return a response
// body (serialized as 200 JSON) or an APIError; wrappers below adapt them to
// gin.
type HandlerFunc func(ctx *gin.Context) (any, *APIError)
type AuthHandlerFunc func(ctx *gin.Context, user *model.User) (any, *APIError)
type ScreenHandlerFunc func(ctx *gin.Context, screen *model.Screen) (any, *APIError)

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpointWithAuth requires that JWTMiddleware already authenticated
// an admin user on this request.
func ResolveEndpointWithAuth(h AuthHandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpointWithScreen requires that ScreenTokenMiddleware already
// resolved the calling device from its bearer token.
func ResolveEndpointWithScreen(h ScreenHandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		screen, ok := middleware.GetCurrentScreen(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		result, apiErr := h(ctx, screen)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
