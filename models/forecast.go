package models

// RiskLevel grades how hostile a forecast day is for harvest logistics.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// DayForecast is one day of weather for the operating region.
type DayForecast struct {
	Date            string    `json:"date"`
	TempMinC        float64   `json:"temp_min_c"`
	TempMaxC        float64   `json:"temp_max_c"`
	PrecipitationMm float64   `json:"precipitation_mm"`
	WindKmh         float64   `json:"wind_kmh"`
	Risk            RiskLevel `json:"risk"`
	Alert           string    `json:"alert,omitempty"`
}
