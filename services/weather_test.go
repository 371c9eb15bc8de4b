package services

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/bst-coder/irrigation-last/config"
)

func newCountingWeather(clock *time.Time) (*WeatherService, *int) {
	s := NewWeatherService(&config.Config{}, func() time.Time { return *clock })
	fetches := 0
	s.fetch = func(context.Context) (*Forecast, error) {
		fetches++
		return &Forecast{Location: "test", LastUpdated: *clock}, nil
	}
	return s, &fetches
}

func TestForecastCachedWithinTTL(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	s, fetches := newCountingWeather(&now)

	first, err := s.Forecast(context.Background())
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}

	now = now.Add(29 * time.Minute)
	second, err := s.Forecast(context.Background())
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}

	if *fetches != 1 {
		t.Fatalf("expected one fetch within the TTL, got %d", *fetches)
	}
	if first != second {
		t.Fatal("expected the cached value back")
	}
}

func TestForecastRefreshesAfterExpiry(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	s, fetches := newCountingWeather(&now)

	if _, err := s.Forecast(context.Background()); err != nil {
		t.Fatalf("forecast: %v", err)
	}
	now = now.Add(31 * time.Minute)
	if _, err := s.Forecast(context.Background()); err != nil {
		t.Fatalf("forecast: %v", err)
	}

	if *fetches != 2 {
		t.Fatalf("expected a refresh after expiry, got %d fetches", *fetches)
	}
}

func TestSimulatedForecastShape(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	f := simulatedForecast(now, rand.New(rand.NewSource(1)))

	if len(f.Forecast) != 7 {
		t.Fatalf("expected 7 forecast days, got %d", len(f.Forecast))
	}
	for i, day := range f.Forecast {
		if day.Temp < 15 || day.Temp > 35 {
			t.Errorf("day %d: temperature out of range: %d", i, day.Temp)
		}
		if day.Humidity < 40 || day.Humidity > 80 {
			t.Errorf("day %d: humidity out of range: %d", i, day.Humidity)
		}
		if !day.Date.Equal(now.AddDate(0, 0, i)) {
			t.Errorf("day %d: unexpected date %v", i, day.Date)
		}
	}
}

func TestSimulatedForecastReproducible(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	first := simulatedForecast(now, rand.New(rand.NewSource(42)))
	second := simulatedForecast(now, rand.New(rand.NewSource(42)))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed must reproduce the forecast:\n%+v\n%+v", first, second)
	}
}
