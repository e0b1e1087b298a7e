// Package webstat publishes HTTP-backed live values: IP geolocation from
// ip-api.com and weather from the open-meteo forecast API, plus weather
// icon downloads. Every read performs a fresh network round trip and
// blocks for its duration; tiles refresh these off the render path and on
// long intervals.
package webstat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// Default endpoints. Tests point a Client at a local server instead.
const (
	DefaultIPAPIBase = "http://ip-api.com/json/"
	DefaultMeteoBase = "https://api.open-meteo.com/v1/forecast"
	DefaultIconBase  = "https://openweathermap.org/img/wn/"
)

// ByteCache persists downloaded bodies across process runs. Satisfied by
// *cache.Store.
type ByteCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte) error
}

// Client builds webstat values against configurable endpoints.
type Client struct {
	httpc     *http.Client
	ipAPIBase string
	meteoBase string
	iconBase  string
	downloads ByteCache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(w *Client) { w.httpc = c }
}

// WithIPAPIBase overrides the ip-api endpoint.
func WithIPAPIBase(base string) ClientOption {
	return func(w *Client) { w.ipAPIBase = base }
}

// WithMeteoBase overrides the open-meteo endpoint.
func WithMeteoBase(base string) ClientOption {
	return func(w *Client) { w.meteoBase = base }
}

// WithIconBase overrides the weather icon endpoint.
func WithIconBase(base string) ClientOption {
	return func(w *Client) { w.iconBase = base }
}

// WithDownloadCache caches FetchBytes bodies, keyed by URL. Only byte
// downloads go through the cache; JSON endpoints always fetch fresh.
func WithDownloadCache(c ByteCache) ClientOption {
	return func(w *Client) { w.downloads = c }
}

// NewClient returns a Client with a 10 second request timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpc:     &http.Client{Timeout: 10 * time.Second},
		ipAPIBase: DefaultIPAPIBase,
		meteoBase: DefaultMeteoBase,
		iconBase:  DefaultIconBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs one GET and decodes the response body into a generic
// map. Non-2xx statuses fail; the value layer never substitutes defaults.
func (c *Client) getJSON(rawURL string) (map[string]any, error) {
	resp, err := c.httpc.Get(rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("webstat: GET %s: status %d", rawURL, resp.StatusCode)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("webstat: decoding %s: %w", rawURL, err)
	}
	return out, nil
}

// IPField is a deferred lookup of a single ip-api.com field, such as
// "city", "lat", "lon", or "query" (the public IP). A field the API does
// not return fails with an ErrLookup-wrapped error.
func (c *Client) IPField(field string) *jit.Command {
	u := c.ipAPIBase + "?fields=" + url.QueryEscape(field)
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return c.getJSON(u)
	}), jit.WithIndex(field))
}

// CurrentWeather is a deferred fetch of open-meteo's current_weather
// object (temperature, windspeed, weathercode) for the given coordinates.
func (c *Client) CurrentWeather(lat, lon float64) *jit.Command {
	u := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current_weather=true&forecast_days=0&timezone=auto",
		c.meteoBase, lat, lon)
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return c.getJSON(u)
	}), jit.WithIndex("current_weather"))
}

// CurrentTemperature narrows CurrentWeather to the temperature, rounded to
// one decimal.
func (c *Client) CurrentTemperature(lat, lon float64) *jit.Command {
	inner := c.CurrentWeather(lat, lon)
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		w, err := inner.Resolve()
		if err != nil {
			return nil, err
		}
		return w, nil
	}), jit.WithIndex("temperature"), jit.WithPostprocess(sources.Round(1)))
}

// HourlyPrecipitation is a deferred fetch of today's hourly precipitation
// probabilities as a list, one value per hour from midnight.
func (c *Client) HourlyPrecipitation(lat, lon float64) *jit.Command {
	u := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&hourly=precipitation_probability&forecast_days=1&timezone=auto",
		c.meteoBase, lat, lon)
	cmd := jit.MustCommand(jit.Thunk(func() (any, error) {
		return c.getJSON(u)
	}), jit.WithIndex("hourly"))

	return jit.MustCommand(jit.Thunk(func() (any, error) {
		return cmd.Resolve()
	}), jit.WithIndex("precipitation_probability"))
}

// FetchBytes is a deferred download of an arbitrary URL's body, for icon
// and image tiles. The result is the raw byte slice.
func (c *Client) FetchBytes(rawURL string) *jit.Command {
	return jit.MustCommand(jit.Thunk(func() (any, error) {
		if c.downloads != nil {
			if data, ok := c.downloads.Get(rawURL); ok {
				return data, nil
			}
		}
		resp, err := c.httpc.Get(rawURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("webstat: GET %s: status %d", rawURL, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if c.downloads != nil {
			// A failed cache write only costs a refetch next run.
			_ = c.downloads.Put(rawURL, data)
		}
		return data, nil
	}))
}

// WeatherDescription maps a WMO weather interpretation code to a short
// human description.
func WeatherDescription(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "showers"
	case code >= 85 && code <= 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}

// WeatherIconName maps a WMO weather interpretation code to the matching
// openweathermap icon file name. day selects the day or night variant.
func WeatherIconName(code int, day bool) string {
	var id string
	switch {
	case code == 0:
		id = "01"
	case code == 1:
		id = "02"
	case code == 2:
		id = "03"
	case code == 3:
		id = "04"
	case code == 45 || code == 48:
		id = "50"
	case (code >= 51 && code <= 57) || (code >= 80 && code <= 82):
		id = "09"
	case code >= 61 && code <= 67:
		id = "10"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		id = "13"
	case code >= 95:
		id = "11"
	default:
		id = "03"
	}
	variant := "n"
	if day {
		variant = "d"
	}
	return id + variant + "@2x.png"
}

// WeatherIcon is a deferred download of the condition icon for a WMO code.
func (c *Client) WeatherIcon(code int, day bool) *jit.Command {
	return c.FetchBytes(c.iconBase + WeatherIconName(code, day))
}

// Catalog returns the named webstat values for the given coordinates.
func (c *Client) Catalog(lat, lon float64) sources.Catalog {
	return sources.Catalog{
		"ip":            c.IPField("query"),
		"city":          c.IPField("city"),
		"country":       c.IPField("country"),
		"weather":       c.CurrentWeather(lat, lon),
		"temperature":   c.CurrentTemperature(lat, lon),
		"precipitation": c.HourlyPrecipitation(lat, lon),
	}
}
