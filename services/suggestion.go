package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/bst-coder/irrigation-last/models"
)

// Threshold rules applied to a zone's most recent reading. Values between
// the bounds emit nothing.
const (
	moistureCriticalBelow = 20.0
	moistureWarnAbove     = 80.0
	tempWarnAbove         = 35.0
	tempInfoBelow         = 5.0
)

// Lookback window for the standalone suggestions endpoint.
const suggestionLookback = 2 * time.Hour

var ErrMissingSuggestionID = errors.New("suggestion id required")

// ZoneSource resolves the zones a suggestion pass runs over.
type ZoneSource interface {
	ZonesOwnedBy(userID uint) ([]models.Zone, error)
}

// ReadingSource fetches recent readings for a set of zones, newest first.
type ReadingSource interface {
	ReadingsSince(zoneIDs []uint, since time.Time, limit int) ([]models.SensorReading, error)
}

// AckSink appends acknowledgment records to the audit trail.
type AckSink interface {
	AppendAck(rec *models.AckRecord) error
}

// SuggestionService computes advisory suggestions from live sensor data.
// Evaluation is pure: nothing is persisted, and results are regenerated
// on every call. Acknowledgment is a separate, append-only audit write
// that never suppresses later regeneration of a still-true condition.
type SuggestionService struct {
	zones    ZoneSource
	readings ReadingSource
	acks     AckSink
	clock    func() time.Time
}

func NewSuggestionService(zones ZoneSource, readings ReadingSource, acks AckSink, clock func() time.Time) *SuggestionService {
	if clock == nil {
		clock = time.Now
	}
	return &SuggestionService{zones: zones, readings: readings, acks: acks, clock: clock}
}

// Evaluate runs the threshold rules over the most recent reading of every
// zone owned by the user and returns the resulting suggestions in zone
// order. A zone with no reading inside the lookback window yields a
// single "no data" warning and is not evaluated further.
func (s *SuggestionService) Evaluate(userID uint) ([]models.Suggestion, error) {
	zones, err := s.zones.ZonesOwnedBy(userID)
	if err != nil {
		return nil, err
	}

	suggestions := []models.Suggestion{}
	if len(zones) == 0 {
		return suggestions, nil
	}

	zoneIDs := make([]uint, len(zones))
	for i, z := range zones {
		zoneIDs[i] = z.ID
	}

	since := s.clock().Add(-suggestionLookback)
	readings, err := s.readings.ReadingsSince(zoneIDs, since, 0)
	if err != nil {
		return nil, err
	}

	// Readings arrive newest first, so the first one seen per zone is
	// that zone's latest.
	latest := make(map[uint]*models.SensorReading, len(zones))
	for i := range readings {
		r := &readings[i]
		if _, seen := latest[r.ZoneID]; !seen {
			latest[r.ZoneID] = r
		}
	}

	for _, zone := range zones {
		reading, ok := latest[zone.ID]
		if !ok {
			suggestions = append(suggestions, models.Suggestion{
				ID:       fmt.Sprintf("%d_no_data", zone.ID),
				Type:     models.SuggestionWarning,
				Message:  "No recent sensor data received",
				ZoneName: zone.Name,
				Priority: models.PriorityMedium,
			})
			continue
		}
		suggestions = append(suggestions, evaluateThresholds(zone, reading)...)
	}
	return suggestions, nil
}

// evaluateThresholds applies the independent moisture and temperature
// rules to a zone's latest reading. A zone may emit zero, one or two
// suggestions in the same pass.
func evaluateThresholds(zone models.Zone, reading *models.SensorReading) []models.Suggestion {
	var out []models.Suggestion

	moisture := reading.SoilMoisture()
	if moisture < moistureCriticalBelow {
		out = append(out, models.Suggestion{
			ID:       fmt.Sprintf("%d_low_moisture", zone.ID),
			Type:     models.SuggestionCritical,
			Message:  fmt.Sprintf("Soil moisture very low (%.0f%%) - urgent irrigation required", moisture),
			ZoneName: zone.Name,
			Action:   models.ActionStartIrrigation,
			Priority: models.PriorityHigh,
		})
	} else if moisture > moistureWarnAbove {
		out = append(out, models.Suggestion{
			ID:       fmt.Sprintf("%d_high_moisture", zone.ID),
			Type:     models.SuggestionWarning,
			Message:  fmt.Sprintf("Soil moisture very high (%.0f%%) - risk of overwatering", moisture),
			ZoneName: zone.Name,
			Action:   models.ActionStopIrrigation,
			Priority: models.PriorityMedium,
		})
	}

	temp := reading.Temperature()
	if temp > tempWarnAbove {
		out = append(out, models.Suggestion{
			ID:       fmt.Sprintf("%d_high_temp", zone.ID),
			Type:     models.SuggestionWarning,
			Message:  fmt.Sprintf("High temperature (%.0f°C) - increase irrigation frequency", temp),
			ZoneName: zone.Name,
			Priority: models.PriorityMedium,
		})
	} else if temp < tempInfoBelow {
		out = append(out, models.Suggestion{
			ID:       fmt.Sprintf("%d_low_temp", zone.ID),
			Type:     models.SuggestionInfo,
			Message:  fmt.Sprintf("Low temperature (%.0f°C) - reduce irrigation", temp),
			ZoneName: zone.Name,
			Priority: models.PriorityLow,
		})
	}
	return out
}

// Acknowledge appends one acknowledgment row for the suggestion. There is
// no uniqueness check: acknowledging the same id twice appends two rows.
func (s *SuggestionService) Acknowledge(suggestionID string, userID uint) (*models.AckRecord, error) {
	if suggestionID == "" {
		return nil, ErrMissingSuggestionID
	}
	rec := &models.AckRecord{
		SuggestionID:   suggestionID,
		UserID:         userID,
		AcknowledgedAt: s.clock(),
		Status:         "acknowledged",
	}
	if err := s.acks.AppendAck(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
