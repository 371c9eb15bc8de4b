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

type ZoneController struct {
	db *gorm.DB
}

func NewZoneController(db *gorm.DB) *ZoneController {
	return &ZoneController{db: db}
}

type createZoneRequest struct {
	Name        string  `json:"name"`
	PlantType   string  `json:"plantType"`
	SoilType    string  `json:"soilType"`
	Area        float64 `json:"area"`
	PlantCount  int     `json:"plantCount"`
	AIEnabled   bool    `json:"aiEnabled"`
	DeviceID    string  `json:"deviceId"`
	Description string  `json:"description"`
}

type updateZoneRequest struct {
	Name        *string  `json:"name"`
	PlantType   *string  `json:"plantType"`
	SoilType    *string  `json:"soilType"`
	Area        *float64 `json:"area"`
	PlantCount  *int     `json:"plantCount"`
	AIEnabled   *bool    `json:"aiEnabled"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
}

// List returns the zones visible to the caller.
func (ctl *ZoneController) List(c *gin.Context) {
	userID, role, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var zones []models.Zone
	if err := ctl.db.Scopes(services.RoleScope(role, userID)).Order("id").Find(&zones).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zones": zones,
		"count": len(zones),
	})
}

// Create registers a new zone on a device, enforcing the device's zone
// capacity, and bumps the device's configured-zone counter.
func (ctl *ZoneController) Create(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.PlantType == "" || req.SoilType == "" || req.DeviceID == "" {
		httperr.Write(c, httperr.InvalidInput("Missing required fields"))
		return
	}

	var device models.Device
	if err := ctl.db.Where("device_id = ?", req.DeviceID).First(&device).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Device not found"))
		return
	}

	var zoneCount int64
	if err := ctl.db.Model(&models.Zone{}).Where("device_id = ?", req.DeviceID).Count(&zoneCount).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}
	if int(zoneCount) >= device.MaxZones {
		httperr.Write(c, httperr.InvalidInput("This device has reached its zone limit"))
		return
	}

	zone := models.Zone{
		Name:        req.Name,
		OwnerUserID: userID,
		DeviceID:    req.DeviceID,
		PlantType:   req.PlantType,
		SoilType:    req.SoilType,
		Area:        req.Area,
		PlantCount:  req.PlantCount,
		AIEnabled:   req.AIEnabled,
		Description: req.Description,
		Status:      "active",
	}
	if err := ctl.db.Create(&zone).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	ctl.db.Model(&device).Update("configured_zones", gorm.Expr("configured_zones + 1"))

	c.JSON(http.StatusCreated, gin.H{
		"message": "Zone created successfully",
		"zone":    zone,
	})
}

// Update applies a partial edit to a zone the caller may see.
func (ctl *ZoneController) Update(c *gin.Context) {
	userID, role, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var zone models.Zone
	if err := ctl.db.Scopes(services.RoleScope(role, userID)).First(&zone, c.Param("id")).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Zone not found"))
		return
	}

	var req updateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.InvalidInput("Invalid input"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PlantType != nil {
		updates["plant_type"] = *req.PlantType
	}
	if req.SoilType != nil {
		updates["soil_type"] = *req.SoilType
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.PlantCount != nil {
		updates["plant_count"] = *req.PlantCount
	}
	if req.AIEnabled != nil {
		updates["ai_enabled"] = *req.AIEnabled
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := ctl.db.Model(&zone).Updates(updates).Error; err != nil {
			httperr.Write(c, httperr.Internal(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Zone updated successfully"})
}

// Delete removes a zone and decrements the owning device's zone counter.
// Readings keep their zone id; they simply stop being reachable through
// zone-scoped queries.
func (ctl *ZoneController) Delete(c *gin.Context) {
	userID, role, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var zone models.Zone
	if err := ctl.db.Scopes(services.RoleScope(role, userID)).First(&zone, c.Param("id")).Error; err != nil {
		httperr.Write(c, httperr.NotFound("Zone not found"))
		return
	}

	if err := ctl.db.Delete(&zone).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	ctl.db.Model(&models.Device{}).
		Where("device_id = ?", zone.DeviceID).
		Update("configured_zones", gorm.Expr("configured_zones - 1"))

	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
}
