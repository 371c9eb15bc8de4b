package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/services"
)

type WeatherController struct {
	weather *services.WeatherService
}

func NewWeatherController(weather *services.WeatherService) *WeatherController {
	return &WeatherController{weather: weather}
}

// Forecast serves the 7-day forecast through the shared 30-minute cache.
func (ctl *WeatherController) Forecast(c *gin.Context) {
	forecast, err := ctl.weather.Forecast(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, forecast)
}
