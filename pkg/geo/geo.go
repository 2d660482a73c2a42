package geo

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const EarthRadiusMeters = 6371000

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Distance returns the great-circle distance in meters between two points
// using the haversine formula. Inputs are not validated.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// BoundAround returns a lat/lng box that contains every point within
// radiusMeters of the center. orb works on a larger earth radius, so the
// radius is scaled to keep the box from clipping points near its edge.
func BoundAround(lat, lng, radiusMeters float64) orb.Bound {
	scaled := radiusMeters * orb.EarthRadius / EarthRadiusMeters
	return orbgeo.NewBoundAroundPoint(orb.Point{lng, lat}, scaled)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
