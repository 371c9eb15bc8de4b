package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/models"
)

// Store wraps the gorm handle with the queries the engine and handlers
// need. Visibility is decided here: ownership scoping for regular users,
// unrestricted access for technicians and developers.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

// RoleScope returns the gorm scope restricting a query to what the given
// role may see. Regular users are limited to rows they own; technicians
// and developers see everything.
func RoleScope(role string, userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if role == models.RoleUser {
			return tx.Where("owner_user_id = ?", userID)
		}
		return tx
	}
}

// ZonesOwnedBy returns the zones belonging to one user. Ownership is the
// sole visibility boundary for suggestion generation, regardless of role.
func (s *Store) ZonesOwnedBy(userID uint) ([]models.Zone, error) {
	var zones []models.Zone
	err := s.db.Where("owner_user_id = ?", userID).Order("id").Find(&zones).Error
	return zones, err
}

// ZonesVisibleTo returns the zones the identity may list.
func (s *Store) ZonesVisibleTo(role string, userID uint) ([]models.Zone, error) {
	var zones []models.Zone
	err := s.db.Scopes(RoleScope(role, userID)).Order("id").Find(&zones).Error
	return zones, err
}

// ReadingsSince returns readings for the given zones newer than since,
// newest first. A limit of 0 means no limit.
func (s *Store) ReadingsSince(zoneIDs []uint, since time.Time, limit int) ([]models.SensorReading, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}
	var readings []models.SensorReading
	q := s.db.Where("zone_id IN ? AND timestamp >= ?", zoneIDs, since).
		Order("timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&readings).Error
	return readings, err
}

// AppendAck appends one acknowledgment row to the audit trail.
func (s *Store) AppendAck(rec *models.AckRecord) error {
	return s.db.Create(rec).Error
}
