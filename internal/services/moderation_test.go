package services

import (
	"context"
	"testing"

	"roa-marketplace-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moderationFixture(actorIsAdmin bool) (*fakeModerationStore, *ModerationService) {
	actor := &models.Profile{ID: "actor", Email: "actor@example.com", IsAdmin: actorIsAdmin, IsActive: true}
	store := &fakeModerationStore{}
	return store, NewModerationService(newFakeProfileStore(actor), store)
}

func TestModerationApplyStatus(t *testing.T) {
	store, svc := moderationFixture(true)

	notes := "contenido verificado"
	record, err := svc.ApplyStatus(context.Background(), "actor", EntityLote, "lote-1", "aprobado", &notes)
	require.NoError(t, err)
	assert.Equal(t, "actor", record.AdminID)
	assert.Equal(t, EntityLote, record.EntityType)
	assert.Equal(t, "aprobado", *record.NewStatus)
	assert.Equal(t, 1, store.calls)
}

func TestModerationNonAdminRejectedBeforeWrite(t *testing.T) {
	store, svc := moderationFixture(false)

	_, err := svc.ApplyStatus(context.Background(), "actor", EntityLote, "lote-1", "aprobado", nil)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Zero(t, store.calls)
}

func TestModerationStatusMustMatchEntityType(t *testing.T) {
	store, svc := moderationFixture(true)

	tests := []struct {
		entityType string
		status     string
	}{
		{EntityLote, "suspendido"},
		{EntityProducto, "verificado"},
		{EntityUsuario, "aprobado"},
		{EntityLote, "publicado"},
		{"categoria", "aprobado"},
	}
	for _, tt := range tests {
		_, err := svc.ApplyStatus(context.Background(), "actor", tt.entityType, "id-1", tt.status, nil)
		assert.True(t, IsValidation(err), "%s/%s", tt.entityType, tt.status)
	}
	assert.Zero(t, store.calls)
}

func TestModerationUsuarioStatuses(t *testing.T) {
	store, svc := moderationFixture(true)

	for _, status := range []string{"activo", "suspendido", "verificado"} {
		_, err := svc.ApplyStatus(context.Background(), "actor", EntityUsuario, "user-1", status, nil)
		require.NoError(t, err, status)
	}
	assert.Equal(t, 3, store.calls)
}

func TestModerationRequiresEntityID(t *testing.T) {
	store, svc := moderationFixture(true)

	_, err := svc.ApplyStatus(context.Background(), "actor", EntityProducto, "", "rechazado", nil)
	assert.True(t, IsValidation(err))
	assert.Zero(t, store.calls)
}
