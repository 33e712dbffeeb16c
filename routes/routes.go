package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"daylog/controllers"
	"daylog/middlewares"
	"daylog/services"
)

// SetupRouter wires services and controllers onto the engine. Every
// dependency comes in explicitly so tests can run against their own
// database and hub.
func SetupRouter(db *gorm.DB, estimator *services.EstimatorService, hub *services.RealtimeHub, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.Default())

	dayService := services.NewDayService(db)
	trendService := services.NewTrendService(db)

	days := controllers.NewDayController(dayService, hub, logger)
	meals := controllers.NewMealController(dayService, estimator, hub, logger)
	trends := controllers.NewTrendController(trendService, logger)
	realtime := controllers.NewRealtimeController(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/days", days.List)
		api.GET("/days/:date", days.Get)
		api.POST("/days", days.Create)
		api.PATCH("/days/:date", days.Update)
		api.DELETE("/days/:date", days.Delete)

		api.POST("/days/:date/meals", meals.Add)
		api.DELETE("/meals/:id", meals.Delete)

		api.GET("/trends", trends.Get)

		api.GET("/ws", realtime.Stream)
	}

	return r
}
