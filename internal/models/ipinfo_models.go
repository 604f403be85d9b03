package models

// IPInfoResponse represents the ipinfo.io geolocation JSON response.
type IPInfoResponse struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"` // "lat,lon"
	Org      string `json:"org"`
	Timezone string `json:"timezone"`
}
