// Package geo resolves delivery coordinates to a human-readable address via
// an external geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/floralab/bloombot/internal/config"
)

// Service is the reverse-geocoding client. Resolution is best effort: a
// missing key or a failed call degrades to a plain coordinate string, it
// never blocks an order.
type Service struct {
	cfg    config.GeoConfig
	client *http.Client
}

// NewService builds the geocoding client.
func NewService(cfg config.GeoConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve turns coordinates into an address string.
func (s *Service) Resolve(ctx context.Context, lat, lon float64) string {
	if !s.cfg.Enabled() {
		return coordinateAddress(lat, lon)
	}

	address, err := s.lookup(ctx, lat, lon)
	if err != nil {
		log.Printf("[geo] lookup failed, using coordinates: %v", err)
		return coordinateAddress(lat, lon)
	}
	return address
}

func (s *Service) lookup(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{
		"apikey":  {s.cfg.APIKey},
		"geocode": {fmt.Sprintf("%f,%f", lon, lat)},
		"format":  {"json"},
		"results": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			GeoObjectCollection struct {
				FeatureMember []struct {
					GeoObject struct {
						Name        string `json:"name"`
						Description string `json:"description"`
					} `json:"GeoObject"`
				} `json:"featureMember"`
			} `json:"GeoObjectCollection"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	members := payload.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return "", fmt.Errorf("no geocoder results")
	}

	obj := members[0].GeoObject
	if obj.Description != "" {
		return obj.Description + ", " + obj.Name, nil
	}
	return obj.Name, nil
}

func coordinateAddress(lat, lon float64) string {
	return fmt.Sprintf("Coordinates: %.4f, %.4f", lat, lon)
}
