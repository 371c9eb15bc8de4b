package models

import "time"

// Suggestion types, in decreasing severity.
const (
	SuggestionCritical = "critical"
	SuggestionWarning  = "warning"
	SuggestionInfo     = "info"
)

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Actuator action tokens a suggestion may carry.
const (
	ActionStartIrrigation = "START_IRRIGATION"
	ActionStopIrrigation  = "STOP_IRRIGATION"
)

// Suggestion is a computed advisory derived from the latest readings of a
// zone. Suggestions are never persisted; they are regenerated on every
// request, so the ID must be stable for the same zone and condition.
type Suggestion struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	ZoneName     string `json:"zoneName"`
	Action       string `json:"action,omitempty"`
	Priority     string `json:"priority"`
	Acknowledged bool   `json:"acknowledged"`
}

// AckRecord is the append-only audit trail of suggestion acknowledgments.
// Rows are never updated or deleted, and repeated acknowledgment of the
// same suggestion appends another row.
type AckRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SuggestionID   string    `json:"suggestionId" gorm:"index;not null"`
	UserID         uint      `json:"userId" gorm:"index;not null"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
	Status         string    `json:"status" gorm:"default:acknowledged"`
}
