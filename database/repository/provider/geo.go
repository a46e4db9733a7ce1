package providerRepo

import (
	"math"

	"providerhub/models"
)

// earthRadiusMeters matches the radius MongoDB uses for spherical distances.
const earthRadiusMeters = 6378100.0

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(a, b models.GeoPoint) float64 {
	lat1, lon1 := a.Latitude(), a.Longitude()
	lat2, lon2 := b.Latitude(), b.Longitude()

	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}
