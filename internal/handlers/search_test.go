package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roa-marketplace-backend/internal/models"
	"roa-marketplace-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoteStore struct {
	lotes []*models.Lote
	err   error
}

func (s *stubLoteStore) Create(_ context.Context, _ *models.Lote) error { return nil }

func (s *stubLoteStore) GetByID(_ context.Context, _ string) (*models.Lote, error) {
	return nil, nil
}

func (s *stubLoteStore) ListByUser(_ context.Context, _ string) ([]*models.Lote, error) {
	return nil, nil
}

func (s *stubLoteStore) ListAvailable(_ context.Context, _ *models.ROAType) ([]*models.Lote, error) {
	return s.lotes, s.err
}

func (s *stubLoteStore) Update(_ context.Context, _ *models.Lote) error { return nil }

func (s *stubLoteStore) UpdateEstado(_ context.Context, _ string, _ models.BatchStatus) error {
	return nil
}

func (s *stubLoteStore) Delete(_ context.Context, _ string) error { return nil }

func doSearch(t *testing.T, store *stubLoteStore, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewSearchHandler(services.NewSearchService(store))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/lotes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SearchLotes(rec, req)
	return rec
}

func TestSearchLotesOK(t *testing.T) {
	store := &stubLoteStore{lotes: []*models.Lote{{
		ID:           "lote-1",
		UserID:       "provider",
		TipoResiduo:  models.ROAPososCafe,
		PesoEstimado: 3,
		UbicacionLat: 4.601,
		UbicacionLng: -74.08,
		Estado:       models.BatchDisponible,
		Status:       models.ModerationAprobado,
	}}}

	rec := doSearch(t, store, `{"lat":4.60,"lng":-74.08,"radius_km":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []services.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "lote-1", results[0].Lote.ID)
	assert.Greater(t, results[0].DistanceKm, 0.0)
}

func TestSearchLotesValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{`},
		{"missing radius", `{"lat":4.6,"lng":-74.08}`},
		{"negative radius", `{"lat":4.6,"lng":-74.08,"radius_km":-2}`},
		{"lat out of range", `{"lat":95,"lng":-74.08,"radius_km":5}`},
		{"bad waste type", `{"lat":4.6,"lng":-74.08,"radius_km":5,"tipo_residuo":"plastico"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, &stubLoteStore{}, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSearchLotesBackendFailure(t *testing.T) {
	store := &stubLoteStore{err: assert.AnError}

	rec := doSearch(t, store, `{"lat":4.6,"lng":-74.08,"radius_km":5}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchLotesEmptyResult(t *testing.T) {
	rec := doSearch(t, &stubLoteStore{}, `{"lat":4.6,"lng":-74.08,"radius_km":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
