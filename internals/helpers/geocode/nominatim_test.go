package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL)
	c.HTTPClient = srv.Client()
	return c, srv
}

func TestGeocodeParsesFirstHit(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "churchfinder-backend", r.Header.Get("User-Agent"))
		assert.Equal(t, "123 Main St, Los Angeles, CA 90001", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"34.0522","lon":"-118.2437","display_name":"Los Angeles, CA"}]`))
	})
	defer srv.Close()

	got, err := c.Geocode(context.Background(), "123 Main St, Los Angeles, CA 90001")
	require.NoError(t, err)
	assert.InDelta(t, 34.0522, got.Lat, 1e-9)
	assert.InDelta(t, -118.2437, got.Lng, 1e-9)
	assert.Equal(t, "Los Angeles, CA", got.DisplayName)
}

func TestGeocodeNoMatch(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := c.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	_, err := c.Geocode(context.Background(), "123 Main St")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestGeocodeUnreachable(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // refuse connections

	_, err := c.Geocode(context.Background(), "123 Main St")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestComposeAddress(t *testing.T) {
	assert.Equal(t, "123 Main St, Los Angeles, CA 90001",
		ComposeAddress("123 Main St", "Los Angeles", "CA", "90001"))
}
