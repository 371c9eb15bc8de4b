package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
	"github.com/bst-coder/irrigation-last/services"
)

type DeviceController struct {
	db *gorm.DB
}

func NewDeviceController(db *gorm.DB) *DeviceController {
	return &DeviceController{db: db}
}

type registerDeviceRequest struct {
	DeviceID    string `json:"deviceId"`
	OwnerUserID uint   `json:"ownerUserId"`
}

// List returns the devices visible to the caller, each enriched with its
// zones and live zone count.
func (ctl *DeviceController) List(c *gin.Context) {
	userID, role, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var devices []models.Device
	if err := ctl.db.Scopes(services.RoleScope(role, userID)).Order("id").Find(&devices).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	enriched := make([]gin.H, 0, len(devices))
	for _, device := range devices {
		var zones []models.Zone
		if err := ctl.db.Where("device_id = ?", device.DeviceID).Order("id").Find(&zones).Error; err != nil {
			httperr.Write(c, httperr.Internal(err))
			return
		}
		enriched = append(enriched, gin.H{
			"id":              device.ID,
			"deviceId":        device.DeviceID,
			"ownerUserId":     device.OwnerUserID,
			"maxZones":        device.MaxZones,
			"maxSensors":      device.MaxSensors,
			"configuredZones": len(zones),
			"status":          device.Status,
			"lastSeen":        device.LastSeen,
			"firmwareVersion": device.FirmwareVersion,
			"zones":           zones,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"devices": enriched,
		"count":   len(enriched),
	})
}

// Register creates a device for a user. Only technicians and developers
// may provision hardware.
func (ctl *DeviceController) Register(c *gin.Context) {
	_, role, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}
	if role != models.RoleTechnician && role != models.RoleDeveloper {
		httperr.Write(c, httperr.Forbidden("Access denied"))
		return
	}

	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" || req.OwnerUserID == 0 {
		httperr.Write(c, httperr.InvalidInput("deviceId and ownerUserId required"))
		return
	}

	var owner models.User
	if err := ctl.db.First(&owner, req.OwnerUserID).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Owner user not found"))
		return
	}

	var existing models.Device
	if err := ctl.db.Where("device_id = ?", req.DeviceID).First(&existing).Error; err == nil {
		httperr.Write(c, httperr.Conflict("This device is already registered"))
		return
	}

	device := models.Device{
		DeviceID:        req.DeviceID,
		OwnerUserID:     req.OwnerUserID,
		MaxZones:        models.DefaultMaxZones,
		MaxSensors:      models.DefaultMaxSensors,
		Status:          models.DeviceStatusOffline,
		FirmwareVersion: "1.0.0",
	}
	if err := ctl.db.Create(&device).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Device registered successfully",
		"device":  device,
	})
}
