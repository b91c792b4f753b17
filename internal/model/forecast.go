package model

type ForecastStatus string

const (
	ForecastSafe     ForecastStatus = "SAFE"
	ForecastCritical ForecastStatus = "CRITICAL"
	ForecastEmpty    ForecastStatus = "EMPTY"
)

// ForecastEntry is one row of the usage forecast, ordered the same way as the
// inventory snapshot it was computed from.
type ForecastEntry struct {
	Name    string         `json:"name"`
	Current float64        `json:"current"`
	Next7   float64        `json:"next7"`
	Next30  float64        `json:"next30"`
	Status  ForecastStatus `json:"status"`
	Unit    string         `json:"unit"`
}
