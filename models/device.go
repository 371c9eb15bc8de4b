package models

import "time"

const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
)

// Default capacity of a controller board: four irrigation zones, up to
// three sensor nodes per zone.
const (
	DefaultMaxZones   = 4
	DefaultMaxSensors = 12
)

// Device is a physical irrigation controller. DeviceID is the external
// identifier the hardware authenticates with; zones reference it rather
// than the numeric primary key.
type Device struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	DeviceID        string    `json:"deviceId" gorm:"unique;not null"`
	OwnerUserID     uint      `json:"ownerUserId" gorm:"index;not null"`
	MaxZones        int       `json:"maxZones" gorm:"default:4"`
	MaxSensors      int       `json:"maxSensors" gorm:"default:12"`
	ConfiguredZones int       `json:"configuredZones"`
	Status          string    `json:"status" gorm:"default:offline"`
	LastSeen        time.Time `json:"lastSeen"`
	FirmwareVersion string    `json:"firmwareVersion" gorm:"default:1.0.0"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
