package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	adminapi "github.com/castell-digital/marquee/internal/http/api/admin/endpoints"
	screenapi "github.com/castell-digital/marquee/internal/http/api/screen/endpoints"
	"github.com/castell-digital/marquee/internal/liveness"
	"github.com/castell-digital/marquee/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage, tracker *liveness.Tracker) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Screen-Token",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.ScreenModule(store),
		adminapi.ContentModule(store, storageSystem),
		adminapi.PlaylistModule(store),
		// session endpoints that require auth
		adminapi.AuthSessionModule(store),
	)

	// device registration is the only unauthenticated screen endpoint
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/screen",
	},
		screenapi.RegistrationModule(store, tracker),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/screen",
		ScreenAuth: true,
		Store:      store,
	},
		screenapi.DeviceModule(store, tracker),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
