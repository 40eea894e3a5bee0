package services

import (
	"context"
	"fmt"
	"sort"

	"roa-marketplace-backend/internal/geo"
	"roa-marketplace-backend/internal/models"
)

// SearchService ranks available lotes by proximity
type SearchService struct {
	lotes LoteStore
}

// NewSearchService creates a new search service
func NewSearchService(lotes LoteStore) *SearchService {
	return &SearchService{lotes: lotes}
}

// SearchFilters are the proximity search inputs
type SearchFilters struct {
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	RadiusKm    float64         `json:"radius_km"`
	TipoResiduo *models.ROAType `json:"tipo_residuo,omitempty"`
}

// SearchResult pairs a matching lote with its computed distance
type SearchResult struct {
	Lote       *models.Lote `json:"lote"`
	DistanceKm float64      `json:"distance_km"`
}

// Search retrieves available approved lotes within the radius, sorted by
// ascending distance. Zero matches is a valid outcome; a fetch failure
// yields an error and no partial results.
func (s *SearchService) Search(ctx context.Context, filters SearchFilters) ([]SearchResult, error) {
	if filters.RadiusKm <= 0 {
		return nil, validationErr("radius_km must be greater than zero")
	}
	if filters.Lat < -90 || filters.Lat > 90 {
		return nil, validationErr("lat must be between -90 and 90")
	}
	if filters.Lng < -180 || filters.Lng > 180 {
		return nil, validationErr("lng must be between -180 and 180")
	}
	if filters.TipoResiduo != nil && !filters.TipoResiduo.Valid() {
		return nil, validationErr("tipo_residuo is not a valid waste type")
	}

	candidates, err := s.lotes.ListAvailable(ctx, filters.TipoResiduo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search candidates: %w", err)
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, lote := range candidates {
		d := geo.HaversineKm(filters.Lat, filters.Lng, lote.UbicacionLat, lote.UbicacionLng)
		if d <= filters.RadiusKm {
			results = append(results, SearchResult{Lote: lote, DistanceKm: d})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
