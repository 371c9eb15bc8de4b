package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bst-coder/irrigation-last/config"
)

const weatherCacheTTL = 30 * time.Minute

// ForecastDay is one day of the 7-day forecast.
type ForecastDay struct {
	Date          time.Time `json:"date"`
	Temp          int       `json:"temp"`
	Humidity      int       `json:"humidity"`
	Precipitation int       `json:"precipitation"`
	WindSpeed     int       `json:"windSpeed"`
	Condition     string    `json:"condition"`
}

type Forecast struct {
	Location    string        `json:"location"`
	Forecast    []ForecastDay `json:"forecast"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Source      string        `json:"source"`
}

// WeatherService is a single-slot read-through cache over the forecast
// provider. The slot holds one value and its expiry; refreshes after
// expiry are not mutually exclusive, so concurrent callers may each fetch
// once. Construct it once at startup and share it by reference.
type WeatherService struct {
	fetch func(ctx context.Context) (*Forecast, error)
	clock func() time.Time
	ttl   time.Duration

	mu     sync.Mutex
	cached *Forecast
	expiry time.Time
}

func NewWeatherService(cfg *config.Config, clock func() time.Time) *WeatherService {
	if clock == nil {
		clock = time.Now
	}
	s := &WeatherService{clock: clock, ttl: weatherCacheTTL}
	if cfg.WeatherAPIURL != "" {
		client := resty.New().SetBaseURL(cfg.WeatherAPIURL)
		s.fetch = func(ctx context.Context) (*Forecast, error) {
			return fetchRemoteForecast(ctx, client, cfg.WeatherAPIKey)
		}
	} else {
		s.fetch = func(context.Context) (*Forecast, error) {
			now := clock()
			return simulatedForecast(now, rand.New(rand.NewSource(now.UnixNano()))), nil
		}
	}
	return s
}

// Forecast returns the cached forecast, fetching a fresh one when the
// slot is empty or expired.
func (s *WeatherService) Forecast(ctx context.Context) (*Forecast, error) {
	s.mu.Lock()
	if s.cached != nil && s.clock().Before(s.expiry) {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	fresh, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = fresh
	s.expiry = s.clock().Add(s.ttl)
	s.mu.Unlock()
	return fresh, nil
}

type weatherAPIResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			DateEpoch int64 `json:"date_epoch"`
			Day       struct {
				AvgTempC      float64 `json:"avgtemp_c"`
				AvgHumidity   float64 `json:"avghumidity"`
				TotalPrecipMM float64 `json:"totalprecip_mm"`
				MaxWindKPH    float64 `json:"maxwind_kph"`
				Condition     struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func fetchRemoteForecast(ctx context.Context, client *resty.Client, apiKey string) (*Forecast, error) {
	var out weatherAPIResponse
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"key": apiKey, "days": "7"}).
		SetResult(&out).
		Get("/forecast.json")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode())
	}

	forecast := &Forecast{
		Location:    fmt.Sprintf("%s, %s", out.Location.Name, out.Location.Country),
		LastUpdated: time.Now(),
		Source:      "weather API",
	}
	for _, day := range out.Forecast.ForecastDay {
		forecast.Forecast = append(forecast.Forecast, ForecastDay{
			Date:          time.Unix(day.DateEpoch, 0),
			Temp:          int(day.Day.AvgTempC),
			Humidity:      int(day.Day.AvgHumidity),
			Precipitation: int(day.Day.TotalPrecipMM),
			WindSpeed:     int(day.Day.MaxWindKPH),
			Condition:     day.Day.Condition.Text,
		})
	}
	return forecast, nil
}

var conditions = []string{"sunny", "cloudy", "rainy", "partly-cloudy"}

// simulatedForecast stands in when no weather API is configured. The
// caller supplies the random source, so a fixed seed reproduces the
// exact forecast.
func simulatedForecast(now time.Time, rng *rand.Rand) *Forecast {
	forecast := &Forecast{
		Location:    "Your region",
		LastUpdated: now,
		Source:      "Simulated weather service",
	}
	for i := 0; i < 7; i++ {
		precipitation := 0
		if rng.Float64() > 0.7 {
			precipitation = rng.Intn(11)
		}
		forecast.Forecast = append(forecast.Forecast, ForecastDay{
			Date:          now.AddDate(0, 0, i),
			Temp:          15 + rng.Intn(21),
			Humidity:      40 + rng.Intn(41),
			Precipitation: precipitation,
			WindSpeed:     rng.Intn(21),
			Condition:     conditions[rng.Intn(len(conditions))],
		})
	}
	return forecast
}
