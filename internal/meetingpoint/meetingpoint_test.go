package meetingpoint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

func members(codes ...string) []trip.Member {
	out := make([]trip.Member, len(codes))
	for i, code := range codes {
		out[i] = trip.Member{ID: code, Name: code, HomeAirport: code}
	}
	return out
}

func TestCalculate_NoAirports(t *testing.T) {
	result := Calculate(nil)

	require.Nil(t, result.Airport)
	require.Nil(t, result.Mean)
	require.Equal(t, Point{Lat: DefaultLat, Lng: DefaultLng}, result.Center)
	require.Equal(t, WideZoom, result.Zoom)
}

func TestCalculate_SingleAirportFallsBackToDefaultView(t *testing.T) {
	result := Calculate(members("JFK"))

	require.Nil(t, result.Airport)
	require.Equal(t, Point{Lat: DefaultLat, Lng: DefaultLng}, result.Center)
	require.Equal(t, WideZoom, result.Zoom)
}

func TestCalculate_UnresolvableCodesAreDropped(t *testing.T) {
	// Only one member resolves, so no meeting point exists.
	input := append(members("JFK"), trip.Member{ID: "x", Name: "x", HomeAirport: "XXX"})
	result := Calculate(input)
	require.Nil(t, result.Airport)

	// A member with no airport at all behaves the same as an unknown code.
	input = append(members("JFK", "LHR"), trip.Member{ID: "y", Name: "y"})
	result = Calculate(input)
	require.NotNil(t, result.Airport)
}

func TestCalculate_TwoMembersMidAtlantic(t *testing.T) {
	result := Calculate(members("JFK", "LHR"))

	require.NotNil(t, result.Mean)
	require.InDelta(t, 46.06, result.Mean.Lat, 0.01)
	require.InDelta(t, -37.11, result.Mean.Lng, 0.01)
	require.Equal(t, result.Center, *result.Mean)
	require.Equal(t, CloserZoom, result.Zoom)

	// The mean sits exactly between the two airports, so either endpoint is
	// a valid nearest pick; what must hold is that the result comes from the
	// reference list, never a synthesized coordinate.
	require.NotNil(t, result.Airport)
	require.Contains(t, []string{"JFK", "LHR"}, result.Airport.Code)
	resolved, ok := airports.Resolve(result.Airport.Code)
	require.True(t, ok)
	require.Equal(t, resolved, *result.Airport)
}

func TestCalculate_EuropeanGroupMeetsInLondon(t *testing.T) {
	result := Calculate(members("JFK", "LHR", "CDG"))

	require.NotNil(t, result.Airport)
	require.Equal(t, "LHR", result.Airport.Code)
}

func TestCalculate_IdenticalAirportsWinAtZeroDistance(t *testing.T) {
	result := Calculate(members("CDG", "CDG"))

	require.NotNil(t, result.Airport)
	require.Equal(t, "CDG", result.Airport.Code)
	require.Equal(t, Point{Lat: result.Airport.Lat, Lng: result.Airport.Lng}, *result.Mean)
}

func TestCalculate_ResultIsAlwaysAReferenceAirport(t *testing.T) {
	groups := [][]trip.Member{
		members("JFK", "LAX"),
		members("SYD", "NRT"),
		members("DXB", "BCN", "CDG", "LHR"),
		members("SFO", "ORD", "JFK"),
	}
	for _, group := range groups {
		result := Calculate(group)
		require.NotNil(t, result.Airport)
		_, ok := airports.Resolve(result.Airport.Code)
		require.True(t, ok)
	}
}
