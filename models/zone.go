package models

import "time"

// Zone is a user-defined irrigated area tied to one device. The
// SoilMoisture, Temperature and Humidity fields are a latest-value cache
// refreshed on every ingested reading; the full history lives in
// SensorReading.
type Zone struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	OwnerUserID  uint      `json:"ownerUserId" gorm:"index;not null"`
	DeviceID     string    `json:"deviceId" gorm:"index;not null"`
	PlantType    string    `json:"plantType"`
	SoilType     string    `json:"soilType"`
	Area         float64   `json:"area"`
	PlantCount   int       `json:"plantCount"`
	AIEnabled    bool      `json:"aiEnabled"`
	Description  string    `json:"description"`
	Status       string    `json:"status" gorm:"default:active"`
	SoilMoisture float64   `json:"soilMoisture"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	LastWatered  time.Time `json:"lastWatered"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
