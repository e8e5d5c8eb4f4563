package app

import (
	"github.com/gin-gonic/gin"
	"github.com/hyolog/core/internal/middleware"
	"github.com/hyolog/core/internal/modules/auth"
	"github.com/hyolog/core/internal/modules/content/category"
	"github.com/hyolog/core/internal/modules/content/post"
	"github.com/hyolog/core/internal/modules/stats/aggregate"
	"github.com/hyolog/core/internal/modules/stats/visit"
	pkgredis "github.com/hyolog/core/internal/pkg/redis"
	"github.com/hyolog/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	loc := a.cfg.Location()

	postService := post.NewService(a.db, a.logger)
	categoryService := category.NewService(a.db)
	visitService := visit.NewService(a.db, loc, a.logger)
	aggregateService := aggregate.NewService(a.db, loc, postService, a.logger)
	authService := auth.NewService(a.db, a.cfg.JWTSecret, a.logger)

	if err := authService.SeedAdmin(a.cfg.Admin); err != nil {
		return err
	}

	postHandler := post.NewHandler(postService)
	categoryHandler := category.NewHandler(categoryService)
	visitHandler := visit.NewHandler(visitService)
	aggregateHandler := aggregate.NewHandler(aggregateService)
	authHandler := auth.NewHandler(authService)

	var rdb *redis.Client
	if rc != nil {
		rdb = rc.Raw()
	}

	a.router.NoRoute(func(c *gin.Context) { response.NotFoundMsg(c, "route not found") })
	a.router.NoMethod(response.MethodNotAllowed)

	api := a.router.Group("/api")
	api.GET("/health", a.health)

	authHandler.RegisterPublic(api)

	public := api.Group("", middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{
		SkipPaths: []string{"/api/health"},
	}))
	postHandler.RegisterPublic(public)
	categoryHandler.Register(public)
	aggregateHandler.Register(public)

	ingest := api.Group("", middleware.RateLimit(rdb))
	visitHandler.Register(ingest)

	authed := api.Group("", middleware.Auth(a.db, a.cfg.JWTSecret))
	authHandler.RegisterAuthed(authed)
	postHandler.RegisterAdmin(authed)

	return nil
}

func (a *App) health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}
