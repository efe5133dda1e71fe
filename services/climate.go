package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/caponcito/Plantaciones-agronomas/config"
	"github.com/caponcito/Plantaciones-agronomas/models"
)

// ErrInvalidForecastDays rejects forecast horizons outside 1..7 days.
var ErrInvalidForecastDays = errors.New("climate: forecast days must be between 1 and 7")

// ClimateService fetches the regional weather outlook from an
// Open-Meteo-compatible endpoint and grades each day for harvest risk.
type ClimateService struct {
	client  *http.Client
	baseURL string
	lat     float64
	lon     float64
}

// NewClimateService builds the client from config; the base URL is
// overridable so tests can point it at a local server.
func NewClimateService(cfg *config.Config) *ClimateService {
	return &ClimateService{
		client:  &http.Client{Timeout: cfg.ForecastTimeout},
		baseURL: cfg.ForecastBaseURL,
		lat:     cfg.CenterLat,
		lon:     cfg.CenterLon,
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time    []string  `json:"time"`
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
		Precip  []float64 `json:"precipitation_sum"`
		Wind    []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Forecast returns up to days graded day forecasts for the region center.
// Unlike route resolution, upstream failures here surface to the caller.
func (s *ClimateService) Forecast(ctx context.Context, days int) ([]models.DayForecast, error) {
	if days < 1 || days > 7 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidForecastDays, days)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(s.lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(s.lon, 'f', 4, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("climate: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("climate: fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("climate: forecast upstream returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("climate: decode forecast: %w", err)
	}

	out := make([]models.DayForecast, 0, days)
	for i, date := range payload.Daily.Time {
		if i >= days {
			break
		}
		day := models.DayForecast{
			Date:            date,
			TempMinC:        at(payload.Daily.TempMin, i),
			TempMaxC:        at(payload.Daily.TempMax, i),
			PrecipitationMm: at(payload.Daily.Precip, i),
			WindKmh:         at(payload.Daily.Wind, i),
		}
		day.Risk, day.Alert = EvaluateDayRisk(day.TempMaxC, day.PrecipitationMm, day.WindKmh)
		out = append(out, day)
	}
	return out, nil
}

// at tolerates ragged arrays in the upstream payload.
func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// EvaluateDayRisk grades one forecast day. Heat stresses crews and fruit,
// rain softens unpaved feeder roads, wind halts loading.
func EvaluateDayRisk(tempMaxC, precipitationMm, windKmh float64) (models.RiskLevel, string) {
	switch {
	case tempMaxC >= 40:
		return models.RiskHigh, "extreme heat"
	case precipitationMm >= 20:
		return models.RiskHigh, "heavy rain"
	case windKmh >= 40:
		return models.RiskHigh, "strong wind"
	case tempMaxC >= 35:
		return models.RiskModerate, "high temperature"
	case precipitationMm >= 10:
		return models.RiskModerate, "rain expected"
	case windKmh >= 30:
		return models.RiskModerate, "windy conditions"
	default:
		return models.RiskLow, ""
	}
}
