package geo

import "math"

const earthRadius = 6371000 // Jari-jari bumi dalam Meter

// Position is a GPS fix reported by a device.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Site is a circular geofence around an office.
type Site struct {
	Key          string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Check is the result of testing a position against the nearest site.
type Check struct {
	Site           Site
	DistanceMeters float64
	Within         bool
}

// radiusEpsilon absorbs floating point noise so a fix exactly on the fence
// counts as inside.
const radiusEpsilon = 1e-6

// Distance returns the great-circle distance in meters between two
// coordinates, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Nearest returns the check against the closest site. ok is false when sites
// is empty.
func Nearest(pos Position, sites []Site) (check Check, ok bool) {
	for i, site := range sites {
		d := Distance(pos.Latitude, pos.Longitude, site.Latitude, site.Longitude)
		if i == 0 || d < check.DistanceMeters {
			check = Check{Site: site, DistanceMeters: d}
		}
	}
	if len(sites) == 0 {
		return Check{}, false
	}
	check.Within = check.DistanceMeters <= check.Site.RadiusMeters+radiusEpsilon
	return check, true
}

// OffsetNorth returns the position meters due north of pos. Negative meters
// move south.
func OffsetNorth(pos Position, meters float64) Position {
	pos.Latitude += meters / earthRadius * (180.0 / math.Pi)
	return pos
}
