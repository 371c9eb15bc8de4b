package services

import (
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bst-coder/irrigation-last/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Device{}, &models.Zone{}, &models.SensorReading{}, &models.AckRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func TestZonesOwnedByFiltersOwner(t *testing.T) {
	store := newTestStore(t)
	store.DB().Create(&models.Zone{Name: "Mine", OwnerUserID: 1, DeviceID: "dev-1"})
	store.DB().Create(&models.Zone{Name: "Theirs", OwnerUserID: 2, DeviceID: "dev-2"})

	zones, err := store.ZonesOwnedBy(1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "Mine" {
		t.Fatalf("expected only the owned zone, got %+v", zones)
	}
}

func TestZonesVisibleToRoles(t *testing.T) {
	store := newTestStore(t)
	store.DB().Create(&models.Zone{Name: "Mine", OwnerUserID: 1, DeviceID: "dev-1"})
	store.DB().Create(&models.Zone{Name: "Theirs", OwnerUserID: 2, DeviceID: "dev-2"})

	cases := []struct {
		role string
		want int
	}{
		{models.RoleUser, 1},
		{models.RoleTechnician, 2},
		{models.RoleDeveloper, 2},
	}
	for _, tc := range cases {
		zones, err := store.ZonesVisibleTo(tc.role, 1)
		if err != nil {
			t.Fatalf("%s: query: %v", tc.role, err)
		}
		if len(zones) != tc.want {
			t.Errorf("%s: expected %d zones, got %d", tc.role, tc.want, len(zones))
		}
	}
}

func TestReadingsSinceWindowOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{10 * time.Minute, 30 * time.Minute, 3 * time.Hour} {
		store.DB().Create(&models.SensorReading{ZoneID: 1, DeviceID: "dev-1", Timestamp: now.Add(-age)})
	}
	store.DB().Create(&models.SensorReading{ZoneID: 99, DeviceID: "dev-9", Timestamp: now.Add(-time.Minute)})

	readings, err := store.ReadingsSince([]uint{1}, now.Add(-2*time.Hour), 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 in-window readings, got %d", len(readings))
	}
	if !readings[0].Timestamp.After(readings[1].Timestamp) {
		t.Error("expected newest-first ordering")
	}

	limited, err := store.ReadingsSince([]uint{1}, now.Add(-2*time.Hour), 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 || !limited[0].Timestamp.Equal(now.Add(-10*time.Minute)) {
		t.Fatalf("limit must keep the newest reading, got %+v", limited)
	}
}

func TestReadingsSinceEmptyZoneSet(t *testing.T) {
	store := newTestStore(t)
	readings, err := store.ReadingsSince(nil, time.Now(), 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected no readings for an empty zone set, got %d", len(readings))
	}
}

func TestAppendAckPersistsRow(t *testing.T) {
	store := newTestStore(t)
	rec := &models.AckRecord{SuggestionID: "1_low_moisture", UserID: 7, AcknowledgedAt: time.Now(), Status: "acknowledged"}
	if err := store.AppendAck(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.AppendAck(&models.AckRecord{SuggestionID: "1_low_moisture", UserID: 7, AcknowledgedAt: time.Now(), Status: "acknowledged"}); err != nil {
		t.Fatalf("second append: %v", err)
	}

	var count int64
	store.DB().Model(&models.AckRecord{}).Where("suggestion_id = ?", "1_low_moisture").Count(&count)
	if count != 2 {
		t.Fatalf("expected two audit rows, got %d", count)
	}
}

func TestStoreFeedsEngine(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)

	store.DB().Create(&models.Zone{Name: "Tomatoes", OwnerUserID: 1, DeviceID: "dev-1"})
	var zone models.Zone
	store.DB().First(&zone)
	store.DB().Create(&models.SensorReading{
		ZoneID:    zone.ID,
		DeviceID:  "dev-1",
		Timestamp: now.Add(-10 * time.Minute),
		Global:    datatypes.NewJSONType(models.GlobalReading{Temp: 22}),
		Locals:    datatypes.NewJSONSlice([]models.LocalReading{{SoilMoisture: 15, Humidity: 50, Temp: 22}}),
	})

	engine := NewSuggestionService(store, store, store, func() time.Time { return now })
	got, err := engine.Evaluate(1)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(got) != 1 || got[0].Type != models.SuggestionCritical {
		t.Fatalf("expected one critical suggestion through the real store, got %+v", got)
	}
}
