package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/http/api"
	authapi "github.com/miqat-labs/minaret/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/miqat-labs/minaret/internal/http/api/admin/endpoints"
	boardapi "github.com/miqat-labs/minaret/internal/http/api/board/endpoints"
	"github.com/miqat-labs/minaret/internal/timetable"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, times *timetable.Service) {
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
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.BoardModule(store),
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	// Public feed boards poll; no auth, boards only hold their own ID.
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		boardapi.FeedModule(store, times),
	)
}
