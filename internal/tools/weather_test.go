package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWeatherClient(t *testing.T) (*WeatherClient, *int32) {
	t.Helper()

	var forecastCalls int32

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "Nowhere" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"results":[{"name":"Yangon","country":"Myanmar","latitude":16.8,"longitude":96.15}]}`)
	}))
	t.Cleanup(geo.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&forecastCalls, 1)
		fmt.Fprint(w, `{"current_weather":{"temperature":31.4,"windspeed":12.3,"weathercode":2}}`)
	}))
	t.Cleanup(forecast.Close)

	c := NewWeatherClient(zap.NewNop())
	c.GeocodingURL = geo.URL
	c.ForecastURL = forecast.URL
	return c, &forecastCalls
}

func TestWeatherCurrent(t *testing.T) {
	c, _ := newTestWeatherClient(t)

	report, err := c.Current(context.Background(), "Yangon")
	require.NoError(t, err)

	assert.Contains(t, report, "Yangon, Myanmar")
	assert.Contains(t, report, "31°C")
	assert.Contains(t, report, "12 km/h")
}

func TestWeatherCachesPerCity(t *testing.T) {
	c, calls := newTestWeatherClient(t)

	_, err := c.Current(context.Background(), "Yangon")
	require.NoError(t, err)
	_, err = c.Current(context.Background(), "  yangon ") // same key after normalizing
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestWeatherUnknownCity(t *testing.T) {
	c, _ := newTestWeatherClient(t)

	_, err := c.Current(context.Background(), "Nowhere")
	assert.Error(t, err)
}
