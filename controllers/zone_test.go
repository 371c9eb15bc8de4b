package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bst-coder/irrigation-last/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func newZoneRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(userID, role))
	ctl := NewZoneController(db)
	r.GET("/zones", ctl.List)
	r.POST("/zones", ctl.Create)
	return r
}

func TestCreateZoneRequiresFields(t *testing.T) {
	db := newTestDB(t)
	r := newZoneRouter(db, 1, models.RoleUser)

	for _, body := range []string{
		`{}`,
		`{"name":"Tomatoes","plantType":"tomato","soilType":"loam"}`,
		`{"name":"Tomatoes","plantType":"tomato","deviceId":"dev-1"}`,
	} {
		if w := postJSON(t, r, "/zones", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCreateZoneUnknownDevice(t *testing.T) {
	db := newTestDB(t)
	r := newZoneRouter(db, 1, models.RoleUser)

	w := postJSON(t, r, "/zones", `{"name":"Tomatoes","plantType":"tomato","soilType":"loam","deviceId":"ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown device, got %d", w.Code)
	}
}

func TestCreateZoneRejectedAtCapacity(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Device{DeviceID: "dev-1", OwnerUserID: 1, MaxZones: 1, MaxSensors: 3})
	db.Create(&models.Zone{Name: "Existing", OwnerUserID: 1, DeviceID: "dev-1"})
	r := newZoneRouter(db, 1, models.RoleUser)

	w := postJSON(t, r, "/zones", `{"name":"Overflow","plantType":"tomato","soilType":"loam","deviceId":"dev-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 at zone capacity, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Zone{}).Where("device_id = ?", "dev-1").Count(&count)
	if count != 1 {
		t.Fatalf("rejected zone must not be persisted, got %d zones", count)
	}
}

func TestCreateZoneIncrementsDeviceCounter(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Device{DeviceID: "dev-1", OwnerUserID: 1, MaxZones: models.DefaultMaxZones})
	r := newZoneRouter(db, 1, models.RoleUser)

	w := postJSON(t, r, "/zones", `{"name":"Tomatoes","plantType":"tomato","soilType":"loam","deviceId":"dev-1","area":12.5,"plantCount":8}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var zone models.Zone
	if err := db.Where("name = ?", "Tomatoes").First(&zone).Error; err != nil {
		t.Fatalf("zone not persisted: %v", err)
	}
	if zone.OwnerUserID != 1 || zone.Status != "active" {
		t.Errorf("zone fields: %+v", zone)
	}

	var device models.Device
	db.Where("device_id = ?", "dev-1").First(&device)
	if device.ConfiguredZones != 1 {
		t.Errorf("configured zones: expected 1, got %d", device.ConfiguredZones)
	}
}

func TestListZonesRoleScoped(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Zone{Name: "Mine", OwnerUserID: 1, DeviceID: "dev-1"})
	db.Create(&models.Zone{Name: "Theirs", OwnerUserID: 2, DeviceID: "dev-2"})

	cases := []struct {
		role string
		want string
	}{
		{models.RoleUser, `"count":1`},
		{models.RoleTechnician, `"count":2`},
	}
	for _, tc := range cases {
		r := newZoneRouter(db, 1, tc.role)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zones", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.role, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Errorf("%s: expected %s in %s", tc.role, tc.want, w.Body.String())
		}
	}
}
