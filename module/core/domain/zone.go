package domain

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type RiskZone struct {
	Name    string    `json:"name"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
	RadiusM float64   `json:"radius_m"`
	Level   RiskLevel `json:"level"`
}

type GeofenceDetails struct {
	Zone      string    `json:"zone"`
	Level     RiskLevel `json:"level"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	DistanceM float64   `json:"distance_m"`
}
