package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	weatherCacheTTL = 10 * time.Minute
)

// WeatherClient looks up current weather by city name via Open-Meteo.
// Reports are cached per city so repeated lookups don't hit the API.
type WeatherClient struct {
	GeocodingURL string
	ForecastURL  string

	http   *http.Client
	cache  *cache.Cache
	logger *zap.Logger
}

func NewWeatherClient(logger *zap.Logger) *WeatherClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherClient{
		GeocodingURL: defaultGeocodingURL,
		ForecastURL:  defaultForecastURL,
		http:         &http.Client{Timeout: 15 * time.Second},
		cache:        cache.New(weatherCacheTTL, 2*weatherCacheTTL),
		logger:       logger,
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current returns a one-line weather report for a city.
func (w *WeatherClient) Current(ctx context.Context, city string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if cached, ok := w.cache.Get(key); ok {
		return cached.(string), nil
	}

	name, country, lat, lon, err := w.geocode(ctx, city)
	if err != nil {
		return "", err
	}

	report, err := w.fetchCurrent(ctx, name, country, lat, lon)
	if err != nil {
		return "", err
	}

	w.cache.Set(key, report, cache.DefaultExpiration)
	return report, nil
}

func (w *WeatherClient) geocode(ctx context.Context, city string) (name, country string, lat, lon float64, err error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")

	var resp geocodeResponse
	if err = w.getJSON(ctx, w.GeocodingURL+"?"+q.Encode(), &resp); err != nil {
		return "", "", 0, 0, fmt.Errorf("geocoding %q: %w", city, err)
	}
	if len(resp.Results) == 0 {
		return "", "", 0, 0, fmt.Errorf("no location found for %q", city)
	}
	r := resp.Results[0]
	return r.Name, r.Country, r.Latitude, r.Longitude, nil
}

func (w *WeatherClient) fetchCurrent(ctx context.Context, name, country string, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current_weather", "true")

	var resp forecastResponse
	if err := w.getJSON(ctx, w.ForecastURL+"?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("fetching weather for %s: %w", name, err)
	}

	cw := resp.CurrentWeather
	place := name
	if country != "" {
		place = name + ", " + country
	}
	return fmt.Sprintf("%s %s: %.0f°C, wind %.0f km/h",
		weatherIcon(cw.WeatherCode), place, cw.Temperature, cw.WindSpeed), nil
}

func (w *WeatherClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// weatherIcon maps WMO weather codes to a glyph for the reply line.
func weatherIcon(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code <= 3:
		return "⛅"
	case code <= 48:
		return "🌫"
	case code <= 67:
		return "🌧"
	case code <= 77:
		return "🌨"
	case code <= 82:
		return "🌧"
	case code <= 86:
		return "🌨"
	default:
		return "⛈"
	}
}
