// Package airports holds the fixed reference airport list and the
// airportdb.io lookup client used to validate free-form airport codes.
package airports

// Airport is a reference entry. The list below is the only source of
// coordinates in the client; it is never mutated at runtime.
type Airport struct {
	Code string
	Name string
	Lat  float64
	Lng  float64
}

// Reference is the fixed list of airports members can be plotted at.
// Order matters: nearest-airport ties are broken by first occurrence.
var Reference = []Airport{
	{Code: "JFK", Name: "New York (JFK)", Lat: 40.6413, Lng: -73.7781},
	{Code: "LAX", Name: "Los Angeles (LAX)", Lat: 33.9416, Lng: -118.4085},
	{Code: "ORD", Name: "Chicago (ORD)", Lat: 41.9742, Lng: -87.9073},
	{Code: "LHR", Name: "London (LHR)", Lat: 51.4694, Lng: -0.4502},
	{Code: "CDG", Name: "Paris (CDG)", Lat: 49.0097, Lng: 2.5479},
	{Code: "SFO", Name: "San Francisco (SFO)", Lat: 37.6213, Lng: -122.3790},
	{Code: "BCN", Name: "Barcelona (BCN)", Lat: 41.2974, Lng: 2.0833},
	{Code: "NRT", Name: "Tokyo (NRT)", Lat: 35.7720, Lng: 140.3929},
	{Code: "SYD", Name: "Sydney (SYD)", Lat: -33.9399, Lng: 151.1753},
	{Code: "DXB", Name: "Dubai (DXB)", Lat: 25.2532, Lng: 55.3657},
}

// Resolve returns the reference airport for a code, if the code is known.
func Resolve(code string) (Airport, bool) {
	for _, a := range Reference {
		if a.Code == code {
			return a, true
		}
	}
	return Airport{}, false
}
