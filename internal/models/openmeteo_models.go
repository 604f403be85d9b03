package models

// OpenMeteoResponse represents the Open-Meteo daily forecast JSON response.
// Only the daily aggregates the pipeline consumes are mapped.
type OpenMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     struct {
		Time                  []string  `json:"time"` // YYYY-MM-DD
		Temperature2mMax      []float64 `json:"temperature_2m_max"`
		Temperature2mMin      []float64 `json:"temperature_2m_min"`
		RelativeHumidity2mMax []float64 `json:"relative_humidity_2m_max"`
		RelativeHumidity2mMin []float64 `json:"relative_humidity_2m_min"`
		PressureMslMean       []float64 `json:"pressure_msl_mean"`
	} `json:"daily"`
}
