package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNominatim_Forward(t *testing.T) {
	tests := []struct {
		name          string
		city          string
		status        int
		body          string
		expected      *Coordinates
		expectedError bool
	}{
		{
			name:     "first match",
			city:     "Paris",
			status:   http.StatusOK,
			body:     `[{"lat":"48.8566","lon":"2.3522"},{"lat":"33.66","lon":"-95.55"}]`,
			expected: &Coordinates{Lat: 48.8566, Lon: 2.3522},
		},
		{
			name:     "no results",
			city:     "Nowhereville",
			status:   http.StatusOK,
			body:     `[]`,
			expected: nil,
		},
		{
			name:          "bad coordinates in payload",
			city:          "Paris",
			status:        http.StatusOK,
			body:          `[{"lat":"not-a-number","lon":"2.3522"}]`,
			expectedError: true,
		},
		{
			name:          "server error",
			city:          "Paris",
			status:        http.StatusInternalServerError,
			body:          `{}`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, tt.city, r.URL.Query().Get("city"))
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				assert.NotEmpty(t, r.Header.Get("User-Agent"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			coords, err := NewNominatim(srv.URL).Forward(context.Background(), tt.city)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, coords)
		})
	}
}

func TestNominatim_Reverse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "city present",
			body:     `{"address":{"city":"Paris"}}`,
			expected: "Paris",
		},
		{
			name:     "town fallback",
			body:     `{"address":{"town":"Giverny"}}`,
			expected: "Giverny",
		},
		{
			name:     "village fallback",
			body:     `{"address":{"village":"Oia"}}`,
			expected: "Oia",
		},
		{
			name:     "nothing resolvable",
			body:     `{"address":{}}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reverse", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			city, err := NewNominatim(srv.URL).Reverse(context.Background(), 48.8566, 2.3522)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, city)
		})
	}
}

func TestMapResolver_TimezoneAt(t *testing.T) {
	r := NewMapResolver()

	assert.Equal(t, "Europe/Paris", r.TimezoneAt(48.8566, 2.3522))
	assert.Equal(t, "Europe/Moscow", r.TimezoneAt(55.7558, 37.6173))
}
