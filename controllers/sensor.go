package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
)

const historyLimit = 1000

type SensorController struct {
	db  *gorm.DB
	hub *Hub
}

func NewSensorController(db *gorm.DB, hub *Hub) *SensorController {
	return &SensorController{db: db, hub: hub}
}

type ingestPayload struct {
	Global models.GlobalReading  `json:"global"`
	Locals []models.LocalReading `json:"locals"`
}

type ingestRequest struct {
	DeviceID   string         `json:"deviceId"`
	Timestamp  *time.Time     `json:"timestamp"`
	SensorData *ingestPayload `json:"sensorData"`
}

// Ingest appends one reading per zone of the device, marks the device
// online and refreshes each zone's latest-value cache. Local readings map
// to zones by index, falling back to the first node when a zone has no
// dedicated one.
func (ctl *SensorController) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" || req.SensorData == nil {
		httperr.Write(c, httperr.InvalidInput("deviceId and sensorData required"))
		return
	}

	var device models.Device
	if err := ctl.db.Where("device_id = ?", req.DeviceID).First(&device).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Device not found"))
		return
	}

	var zones []models.Zone
	if err := ctl.db.Where("device_id = ?", req.DeviceID).Order("id").Find(&zones).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	timestamp := time.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	for i, zone := range zones {
		reading := models.SensorReading{
			ZoneID:    zone.ID,
			DeviceID:  req.DeviceID,
			Timestamp: timestamp,
			Global:    datatypes.NewJSONType(req.SensorData.Global),
			Locals:    datatypes.NewJSONSlice(req.SensorData.Locals),
		}
		if err := ctl.db.Create(&reading).Error; err != nil {
			httperr.Write(c, httperr.Internal(err))
			return
		}

		if len(req.SensorData.Locals) > 0 {
			local := req.SensorData.Locals[0]
			if i < len(req.SensorData.Locals) {
				local = req.SensorData.Locals[i]
			}
			temperature := req.SensorData.Global.Temp
			if temperature == 0 {
				temperature = local.Temp
			}
			updates := map[string]interface{}{
				"soil_moisture": local.SoilMoisture,
				"temperature":   temperature,
				"humidity":      local.Humidity,
			}
			if err := ctl.db.Model(&models.Zone{}).Where("id = ?", zone.ID).Updates(updates).Error; err != nil {
				httperr.Write(c, httperr.Internal(err))
				return
			}
		}

		ctl.hub.BroadcastReading(zone.OwnerUserID, reading)
	}

	ctl.db.Model(&device).Updates(map[string]interface{}{
		"status":    models.DeviceStatusOnline,
		"last_seen": time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Data recorded successfully",
		"timestamp": time.Now(),
	})
}

// History returns a zone's readings newest first, optionally bounded by
// start/end, capped at 1000 points. The zone must belong to the caller.
func (ctl *SensorController) History(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	zoneID := c.Query("zoneId")
	if zoneID == "" {
		httperr.Write(c, httperr.InvalidInput("zoneId required"))
		return
	}

	var zone models.Zone
	if err := ctl.db.Where("id = ? AND owner_user_id = ?", zoneID, userID).First(&zone).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Zone not found"))
		return
	}

	query := ctl.db.Where("zone_id = ?", zone.ID)
	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			query = query.Where("timestamp >= ?", t)
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			query = query.Where("timestamp <= ?", t)
		}
	}

	var readings []models.SensorReading
	if err := query.Order("timestamp desc").Limit(historyLimit).Find(&readings).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  readings,
		"count": len(readings),
		"zone": gin.H{
			"id":        zone.ID,
			"name":      zone.Name,
			"plantType": zone.PlantType,
		},
	})
}
