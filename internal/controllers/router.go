package controllers

import (
	"net/http"
	"time"

	"github.com/fsdevblog/smartlink/internal/bmeta"
	"github.com/fsdevblog/smartlink/internal/config"
	"github.com/fsdevblog/smartlink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// RouterParams зависимости HTTP слоя.
type RouterParams struct {
	LinkService     LinkManager
	RedirectService Redirector
	RuleService     RuleManager
	UserService     Authenticator
	PingService     ConnectionChecker
	CacheStats      CacheStatsProvider
	AppConf         *config.Config
	Logger          *logrus.Logger
}

// SetupRouter собирает gin роутер со всеми обработчиками.
func SetupRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(p.Logger))

	jwtSecret := []byte(p.AppConf.JWTSecret)

	linksController := NewLinksController(p.LinkService, p.RedirectService, p.AppConf.BaseURL)
	rulesController := NewRulesController(p.RuleService)
	authController := NewAuthController(p.UserService, jwtSecret)
	pingController := NewPingController(p.PingService)

	r.GET("/ping", pingController.Ping)
	r.GET("/:shortCode", linksController.Redirect)

	api := r.Group("/api", middlewares.Gzip())
	{
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)

		api.POST("/shorten", middlewares.AuthOptional(jwtSecret), linksController.Shorten)
		api.GET("/info/:shortCode", linksController.Info)

		api.GET("/version", versionHandler)
		api.GET("/cache/stats", cacheStatsHandler(p.CacheStats))

		authenticated := api.Group("", middlewares.AuthRequired(jwtSecret))
		{
			authenticated.GET("/my-links", linksController.MyLinks)
			authenticated.DELETE("/links/:shortCode", linksController.DeleteLink)

			authenticated.POST("/rules", rulesController.Create)
			authenticated.GET("/rules/:urlID", rulesController.List)
			authenticated.DELETE("/rules/:ruleID", rulesController.Delete)
		}
	}

	return r
}

// versionHandler отдает метаданные сборки.
func versionHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    "smartlink",
		"version": bmeta.Version(),
		"commit":  bmeta.Commit(),
	})
}

// cacheStatsHandler отдает статистику бекенда кэша.
func cacheStatsHandler(stats CacheStatsProvider) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, stats.Stats(ctx))
	}
}
