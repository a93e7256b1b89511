// Package meetingpoint computes where a group of trip members should meet.
// Given the members' home airports it derives the unweighted mean of their
// coordinates and picks the reference airport nearest to that mean. The
// result also drives the map view: center and zoom fall out of the same
// computation so the caller re-renders from a single value.
package meetingpoint

import (
	"math"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// Default world view shown when fewer than two airports resolve.
const (
	DefaultLat  = 20
	DefaultLng  = 0
	WideZoom    = 2
	CloserZoom  = 5
	minAirports = 2
)

// Point is a plain lat/lng pair. The mean point is not a true geodesic
// centroid; latitude and longitude are averaged independently.
type Point struct {
	Lat float64
	Lng float64
}

// Result is the outcome of a calculation. Airport is nil when fewer than
// two members have a resolvable home airport; Center and Zoom are always
// valid for display.
type Result struct {
	Center  Point
	Zoom    int
	Mean    *Point
	Airport *airports.Airport
}

// Calculate is a pure function of its input. Members whose airport code is
// empty or does not resolve against the reference list are dropped silently.
func Calculate(members []trip.Member) Result {
	var located []airports.Airport
	for _, m := range members {
		if m.HomeAirport == "" {
			continue
		}
		if a, ok := airports.Resolve(m.HomeAirport); ok {
			located = append(located, a)
		}
	}

	// With zero or one located member there is no meeting point to show;
	// the map stays on the default world view.
	if len(located) < minAirports {
		return Result{Center: Point{Lat: DefaultLat, Lng: DefaultLng}, Zoom: WideZoom}
	}

	var sumLat, sumLng float64
	for _, a := range located {
		sumLat += a.Lat
		sumLng += a.Lng
	}
	mean := Point{
		Lat: sumLat / float64(len(located)),
		Lng: sumLng / float64(len(located)),
	}

	nearest := nearestTo(mean)
	return Result{Center: mean, Zoom: CloserZoom, Mean: &mean, Airport: &nearest}
}

// nearestTo scans the full reference list and returns the entry minimizing
// Euclidean distance in lat/lng space. Ties go to the earlier entry.
func nearestTo(p Point) airports.Airport {
	var nearest airports.Airport
	minDistance := math.Inf(1)
	for _, a := range airports.Reference {
		d := math.Hypot(a.Lat-p.Lat, a.Lng-p.Lng)
		if d < minDistance {
			minDistance = d
			nearest = a
		}
	}
	return nearest
}
