package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquiverde/backend/internal/domain"
)

func TestGeocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Plaza de Armas, Santiago", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "LiquiVerde/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"-33.4378","lon":"-70.6506","display_name":"Plaza de Armas, Santiago, Chile"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "LiquiVerde/1.0")

	location, err := client.Geocode(context.Background(), "Plaza de Armas, Santiago")
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.Equal(t, -33.4378, location.Latitude)
	assert.Equal(t, -70.6506, location.Longitude)
	assert.Equal(t, "Plaza de Armas, Santiago, Chile", location.Address)
}

func TestGeocode_AddressNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "LiquiVerde/1.0")

	_, err := client.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "LiquiVerde/1.0")

	_, err := client.Geocode(context.Background(), "Plaza de Armas")
	assert.ErrorIs(t, err, domain.ErrExternalAPIFailure)
}

func TestReverseGeocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "-33.4489", r.URL.Query().Get("lat"))
		assert.Equal(t, "-70.6693", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Alameda 1000, Santiago, Chile"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "LiquiVerde/1.0")

	address, err := client.ReverseGeocode(context.Background(), -33.4489, -70.6693)
	require.NoError(t, err)
	assert.Equal(t, "Alameda 1000, Santiago, Chile", address)
}

func TestReverseGeocode_NoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "LiquiVerde/1.0")

	_, err := client.ReverseGeocode(context.Background(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}
