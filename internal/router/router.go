package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/quokkabay/quokkabay/docs"
	"github.com/quokkabay/quokkabay/internal/config"
	"github.com/quokkabay/quokkabay/internal/infra/identity"
	"github.com/quokkabay/quokkabay/internal/middleware"
	"github.com/quokkabay/quokkabay/internal/modules/handler"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
	"github.com/quokkabay/quokkabay/internal/telemetry"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	Resolver        identity.Resolver
	Gatherer        prometheus.Gatherer
	SurveyHandler   *handler.SurveyHandler
	FavoriteHandler *handler.FavoriteHandler
	AuthHandler     *handler.AuthHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		// trace id to response header
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))
	if d.Config.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORS.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Trace-Id"},
		AllowCredentials: true,
	}))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	if d.Config.Metrics.Enabled && d.Gatherer != nil {
		r.GET(d.Config.Metrics.Path, telemetry.MetricsHandler(d.Gatherer))
	}

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/hobbies", handler.ListHobbies)

		auth := v1.Group("/auth")
		{
			auth.GET("/callback", d.AuthHandler.Callback)
			auth.POST("/signout", d.AuthHandler.SignOut)
		}

		protected := v1.Group("")
		protected.Use(middleware.IdentityAuth(d.Resolver, d.Config.Supabase.CookieName, d.Log))
		{
			protected.GET("/auth/me", d.AuthHandler.Me)

			surveys := protected.Group("/surveys")
			{
				surveys.POST("", d.SurveyHandler.CreateSurvey)
				surveys.GET("", d.SurveyHandler.ListSurveys)
				surveys.GET("/exists", d.SurveyHandler.SurveyExists)
				surveys.GET("/:survey_id", d.SurveyHandler.GetSurvey)
				surveys.GET("/:survey_id/results", d.SurveyHandler.GetSurveyResults)
			}

			favorites := protected.Group("/favorites")
			{
				favorites.GET("", d.FavoriteHandler.ListFavorites)
				favorites.POST("", d.FavoriteHandler.AddFavorite)
				favorites.DELETE("", d.FavoriteHandler.RemoveFavorite)
			}
		}
	}
	return r
}
