package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const userAgent = "birthdaybot"

// Nominatim is a Geocoder backed by the OpenStreetMap Nominatim API
type Nominatim struct {
	baseURL string
	client  *http.Client
}

// NewNominatim creates a geocoder client for the given base URL
func NewNominatim(baseURL string) *Nominatim {
	return &Nominatim{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

// Forward geocodes a city name to coordinates, taking the first match only
func (n *Nominatim) Forward(ctx context.Context, city string) (*Coordinates, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []searchResult
	if err := n.get(ctx, "/search", q, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}
	return &Coordinates{Lat: lat, Lon: lon}, nil
}

// Reverse resolves a display city name for coordinates, best-effort
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")

	var result reverseResult
	if err := n.get(ctx, "/reverse", q, &result); err != nil {
		return "", err
	}

	switch {
	case result.Address.City != "":
		return result.Address.City, nil
	case result.Address.Town != "":
		return result.Address.Town, nil
	case result.Address.Village != "":
		return result.Address.Village, nil
	}
	return "", nil
}

func (n *Nominatim) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	// Nominatim's usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nominatim %s: decode response: %w", path, err)
	}
	return nil
}
