package models

import (
	"time"

	"gorm.io/datatypes"
)

// GlobalReading carries the per-device ambient measurements of a sample
// batch. Missing fields decode to zero.
type GlobalReading struct {
	Temp float64 `json:"temp"`
}

// LocalReading is one physical sensor node's sample within a zone.
type LocalReading struct {
	SoilMoisture float64 `json:"soilMoisture"`
	Humidity     float64 `json:"humidity"`
	Temp         float64 `json:"temp"`
}

// SensorReading is an immutable, append-only sample batch for a zone:
// one global reading plus an ordered list of local node readings.
type SensorReading struct {
	ID        uint                              `json:"id" gorm:"primaryKey"`
	ZoneID    uint                              `json:"zoneId" gorm:"index;not null"`
	DeviceID  string                            `json:"deviceId" gorm:"index;not null"`
	Timestamp time.Time                         `json:"timestamp" gorm:"index"`
	Global    datatypes.JSONType[GlobalReading] `json:"global"`
	Locals    datatypes.JSONSlice[LocalReading] `json:"locals"`
}

// SoilMoisture returns the first local node's soil moisture, or 0 when
// the batch has no local readings.
func (r *SensorReading) SoilMoisture() float64 {
	if len(r.Locals) == 0 {
		return 0
	}
	return r.Locals[0].SoilMoisture
}

// Temperature returns the ambient temperature of the batch.
func (r *SensorReading) Temperature() float64 {
	return r.Global.Data().Temp
}

// Humidity returns the first local node's humidity, or 0 when the batch
// has no local readings.
func (r *SensorReading) Humidity() float64 {
	if len(r.Locals) == 0 {
		return 0
	}
	return r.Locals[0].Humidity
}
