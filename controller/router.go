package controller

import (
	"time"

	"github.com/fabricio-odn/portfolio/logger"
	"github.com/fabricio-odn/portfolio/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter define all routes of the site
func NewRouter(apiController APIController, pageController PageController) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.Templates())

	router.Use(
		gin.Recovery(),
		logger.GinMiddleware(),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/", pageController.GetIndex)
	router.GET("/health", apiController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/projects", apiController.GetProjects)
		api.GET("/projects/stream", apiController.StreamProjects)
		api.GET("/content", apiController.GetContent)
	}

	router.NoRoute(pageController.NotFound)

	return router
}
