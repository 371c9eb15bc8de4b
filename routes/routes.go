package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/config"
	"github.com/bst-coder/irrigation-last/controllers"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/services"
)

// SetupRouter builds the service graph and wires every route onto a gin
// engine.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	store := services.NewStore(db)
	tokens := services.NewTokenService(cfg)
	engine := services.NewSuggestionService(store, store, store, nil)
	chat := services.NewChatService(store, store, services.NewGroqClient(cfg), nil)
	weather := services.NewWeatherService(cfg, nil)
	hub := controllers.NewHub()

	authCtl := controllers.NewAuthController(db, tokens)
	deviceCtl := controllers.NewDeviceController(db)
	zoneCtl := controllers.NewZoneController(db)
	sensorCtl := controllers.NewSensorController(db, hub)
	suggestionCtl := controllers.NewSuggestionController(engine)
	chatCtl := controllers.NewChatController(chat, hub)
	weatherCtl := controllers.NewWeatherController(weather)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.POST("/signup", authCtl.Signup)
	r.POST("/login", authCtl.Login)

	auth := r.Group("/")
	auth.Use(middlewares.Auth(tokens))
	auth.GET("/profile", authCtl.Profile)

	auth.GET("/devices", deviceCtl.List)
	auth.POST("/devices", deviceCtl.Register)

	auth.GET("/zones", zoneCtl.List)
	auth.POST("/zones", zoneCtl.Create)
	auth.PUT("/zones/:id", zoneCtl.Update)
	auth.DELETE("/zones/:id", zoneCtl.Delete)

	auth.POST("/sensor-data", sensorCtl.Ingest)
	auth.GET("/data", sensorCtl.History)

	auth.GET("/suggestions", suggestionCtl.List)
	auth.POST("/suggestions/ack", suggestionCtl.Acknowledge)
	auth.POST("/chat", chatCtl.Send)

	auth.GET("/weather/forecast", weatherCtl.Forecast)
	auth.GET("/ws", hub.Handle)

	return r
}
