// README: Thin wrapper over the Google Maps Places API for nearby lookups.
package maps

import (
	"context"
	"fmt"

	gmaps "googlemaps.github.io/maps"

	"voyager/internal/types"
)

// Place is the subset of a Places result the assistant surfaces.
type Place struct {
	Name     string
	Address  string
	Rating   float32
	MapsURL  string
	Location types.LatLng
}

type PlacesService struct {
	client *gmaps.Client
	radius uint
}

func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps: create client: %w", err)
	}
	return &PlacesService{client: client, radius: 1500}, nil
}

// Nearby looks up places around the given point matching the keyword.
func (s *PlacesService) Nearby(ctx context.Context, keyword string, at types.LatLng) ([]Place, error) {
	resp, err := s.client.NearbySearch(ctx, &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: at.Lat, Lng: at.Lng},
		Radius:   s.radius,
		Keyword:  keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("maps: nearby search: %w", err)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			Name:    r.Name,
			Address: r.Vicinity,
			Rating:  r.Rating,
			MapsURL: fmt.Sprintf("https://www.google.com/maps/place/?q=place_id:%s", r.PlaceID),
			Location: types.LatLng{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}
	return places, nil
}
