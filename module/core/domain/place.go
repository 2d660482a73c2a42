package domain

type PlaceKind string

const (
	PlaceEat  PlaceKind = "eat"
	PlaceShop PlaceKind = "shop"
	PlaceSpot PlaceKind = "spot"
)

type Place struct {
	ID     string    `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Kind   PlaceKind `json:"kind" db:"kind"`
	Rating float64   `json:"rating" db:"rating"`
	Lat    float64   `json:"lat" db:"lat"`
	Lng    float64   `json:"lng" db:"lng"`
	// Distance is in kilometers from the search point.
	Distance float64 `json:"distance" db:"-"`
}

type NearbyQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

type CrowdPrediction struct {
	AreaName   string    `json:"area_name"`
	Time       string    `json:"time"`
	Score      float64   `json:"score"`
	Prediction string    `json:"prediction"`
	RiskLevel  RiskLevel `json:"risk_level"`
}
