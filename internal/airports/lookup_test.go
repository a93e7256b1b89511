package airports_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
)

func TestResolve_KnownAndUnknownCodes(t *testing.T) {
	airport, ok := airports.Resolve("BCN")
	require.True(t, ok)
	require.Equal(t, "Barcelona (BCN)", airport.Name)

	_, ok = airports.Resolve("XXX")
	require.False(t, ok)
}

func TestLookup_ReturnsAirportInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/airport/LEBL", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("apiToken"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "Barcelona El Prat", "municipality": "Barcelona", "iso_country": "ES", "icao_code": "LEBL"}`))
	}))
	defer server.Close()

	client := airports.NewLookupClient(server.URL, "secret")
	info, err := client.Lookup(context.Background(), "LEBL")
	require.NoError(t, err)
	require.Equal(t, "Barcelona El Prat", info.Name)
	require.Equal(t, "Barcelona", info.City)
	require.Equal(t, "ES", info.Country)
}

func TestLookup_UnknownCodeMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := airports.NewLookupClient(server.URL, "token")
	_, err := client.Lookup(context.Background(), "ZZZZ")
	require.ErrorIs(t, err, airports.ErrUnknownCode)
}

func TestLookup_ServerFaultIsNotUnknownCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := airports.NewLookupClient(server.URL, "token")
	_, err := client.Lookup(context.Background(), "LEBL")
	require.Error(t, err)
	require.NotErrorIs(t, err, airports.ErrUnknownCode)
}
