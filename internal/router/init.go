package router

import (
	"github.com/devconnector/devconnector-api/internal/application"
	"github.com/devconnector/devconnector-api/internal/container"
	pginfra "github.com/devconnector/devconnector-api/internal/infrastructure/postgres"
	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
	"github.com/devconnector/devconnector-api/internal/router/modules"
)

// InitModules constructs repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	authSvc := application.NewAuthService(users, jwt, logger)
	profileSvc := application.NewProfileService(profiles, users, rdb, cfg.ListCacheTTL, logger)
	postSvc := application.NewPostService(posts, users, rdb, cfg.ListCacheTTL, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt, logger))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), jwt, logger))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt, logger))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
