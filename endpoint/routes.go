package endpoint

import (
	"fmt"
	"net/http"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/ariebrainware/medical-forum/middleware"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the forum resources on r. Write operations go
// through the rate limiter.
func RegisterRoutes(r gin.IRouter, limit middleware.RateLimitConfig) {
	limiter := middleware.RateLimiter(limit)

	api := r.Group(APIPrefix)
	{
		api.GET("/diagnoses/", ListDiagnoses)
		api.POST("/diagnoses/", limiter, CreateDiagnosis)
		api.GET("/diagnoses/:id/", GetDiagnosis)

		api.GET("/messages/", ListMessages)
		api.POST("/messages/", limiter, CreateMessage)
		api.GET("/messages/:id/", GetMessage)

		api.GET("/users/", ListUsers)
		api.GET("/users/:id/", GetUser)
	}
}

// NewRouter builds the HTTP handler serving db.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORSMiddleware(),
		middleware.DatabaseMiddleware(db),
		middleware.AuditTrail(),
	)

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	RegisterRoutes(router, middleware.RateLimitConfig{
		Limit:  cfg.RateLimit,
		Window: cfg.RateWindow,
	})

	router.NoRoute(func(c *gin.Context) {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Resource not found",
			Err: fmt.Errorf("no resource at %s", c.Request.URL.Path),
		})
	})

	return router
}
