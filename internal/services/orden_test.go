package services

import (
	"context"
	"testing"

	"roa-marketplace-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrdenFixture(estado models.OrderStatus, tipo models.ItemType) (*models.Orden, *fakeOrdenStore, *fakeLoteStore, *fakeNotifier, *OrdenService) {
	lote := availableLote("lote-1", 4.6, -74.08)
	if estado != models.OrderPendiente {
		lote.Estado = models.BatchReservado
	}
	orden := &models.Orden{
		ID:                 "orden-1",
		SolicitanteID:      "requester",
		ProveedorID:        "provider",
		TipoItem:           tipo,
		ItemID:             "lote-1",
		CantidadSolicitada: 2,
		Estado:             estado,
	}
	ordenes := newFakeOrdenStore(orden)
	lotes := newFakeLoteStore(lote)
	ordenes.lotes = lotes
	notifier := &fakeNotifier{}
	svc := NewOrdenService(ordenes, lotes, newFakeProductoStore(), notifier)
	return orden, ordenes, lotes, notifier, svc
}

func TestOrdenCreateNotifiesProvider(t *testing.T) {
	lote := availableLote("lote-1", 4.6, -74.08)
	notifier := &fakeNotifier{}
	svc := NewOrdenService(newFakeOrdenStore(), newFakeLoteStore(lote), newFakeProductoStore(), notifier)

	orden, err := svc.Create(context.Background(), "requester", OrdenInput{
		TipoItem:           models.ItemLote,
		ItemID:             "lote-1",
		CantidadSolicitada: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPendiente, orden.Estado)
	assert.Equal(t, "provider", orden.ProveedorID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "provider", notifier.sent[0].userID)
	assert.Equal(t, "orden_solicitud", notifier.sent[0].tipo)
}

func TestOrdenCreateRejectsOwnItem(t *testing.T) {
	lote := availableLote("lote-1", 4.6, -74.08)
	svc := NewOrdenService(newFakeOrdenStore(), newFakeLoteStore(lote), newFakeProductoStore(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), "provider", OrdenInput{
		TipoItem:           models.ItemLote,
		ItemID:             "lote-1",
		CantidadSolicitada: 1,
	})
	assert.ErrorIs(t, err, ErrSelfOrder)
}

func TestOrdenCreateRejectsUnavailableItem(t *testing.T) {
	reserved := availableLote("lote-1", 4.6, -74.08)
	reserved.Estado = models.BatchReservado
	rejected := availableLote("lote-2", 4.6, -74.08)
	rejected.Status = models.ModerationRechazado

	svc := NewOrdenService(newFakeOrdenStore(), newFakeLoteStore(reserved, rejected), newFakeProductoStore(), &fakeNotifier{})

	for _, itemID := range []string{"lote-1", "lote-2"} {
		_, err := svc.Create(context.Background(), "requester", OrdenInput{
			TipoItem:           models.ItemLote,
			ItemID:             itemID,
			CantidadSolicitada: 1,
		})
		assert.ErrorIs(t, err, ErrItemUnavailable, itemID)
	}
}

func TestOrdenCreateValidation(t *testing.T) {
	svc := NewOrdenService(newFakeOrdenStore(), newFakeLoteStore(), newFakeProductoStore(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), "requester", OrdenInput{
		TipoItem:           "caja",
		ItemID:             "x",
		CantidadSolicitada: 1,
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(context.Background(), "requester", OrdenInput{
		TipoItem:           models.ItemLote,
		ItemID:             "x",
		CantidadSolicitada: 0,
	})
	assert.True(t, IsValidation(err))
}

func TestOrdenAcceptReservesLote(t *testing.T) {
	lote := availableLote("lote-1", 4.6, -74.08)
	orden := &models.Orden{
		ID:            "orden-1",
		SolicitanteID: "requester",
		ProveedorID:   "provider",
		TipoItem:      models.ItemLote,
		ItemID:        "lote-1",
		Estado:        models.OrderPendiente,
	}
	ordenes := newFakeOrdenStore(orden)
	lotes := newFakeLoteStore(lote)
	ordenes.lotes = lotes
	notifier := &fakeNotifier{}
	svc := NewOrdenService(ordenes, lotes, newFakeProductoStore(), notifier)

	mensaje := "paso por la tarde"
	updated, err := svc.Accept(context.Background(), "orden-1", "provider", &mensaje)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAceptada, updated.Estado)
	assert.Equal(t, models.BatchReservado, lote.Estado)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "requester", notifier.sent[0].userID)
	assert.Equal(t, "orden_aceptada", notifier.sent[0].tipo)
	assert.Len(t, ordenes.jointCalls, 1)
}

func TestOrdenAcceptFailureLeavesNoPartialState(t *testing.T) {
	orden, ordenes, lotes, notifier, svc := newOrdenFixture(models.OrderPendiente, models.ItemLote)
	ordenes.jointErr = assert.AnError

	_, err := svc.Accept(context.Background(), "orden-1", "provider", nil)
	require.Error(t, err)
	assert.Equal(t, models.OrderPendiente, orden.Estado)
	assert.Equal(t, models.BatchDisponible, lotes.lotes["lote-1"].Estado)
	assert.Empty(t, notifier.sent)
}

func TestOrdenAcceptOnlyProvider(t *testing.T) {
	_, ordenes, _, _, svc := newOrdenFixture(models.OrderPendiente, models.ItemLote)

	_, err := svc.Accept(context.Background(), "orden-1", "requester", nil)
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.Empty(t, ordenes.estadoCalls)
}

func TestOrdenCompleteDirectFromPendingRejected(t *testing.T) {
	_, ordenes, _, _, svc := newOrdenFixture(models.OrderPendiente, models.ItemLote)

	_, err := svc.Complete(context.Background(), "orden-1", "requester")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, ordenes.estadoCalls)
}

func TestOrdenCompleteCollectsLote(t *testing.T) {
	_, _, lotes, notifier, svc := newOrdenFixture(models.OrderAceptada, models.ItemLote)

	updated, err := svc.Complete(context.Background(), "orden-1", "requester")
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompletada, updated.Estado)
	assert.Equal(t, models.BatchRecogido, lotes.lotes["lote-1"].Estado)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "provider", notifier.sent[0].userID)
	assert.Equal(t, "orden_completada", notifier.sent[0].tipo)
}

func TestOrdenCancelByEitherParticipant(t *testing.T) {
	for _, actor := range []string{"requester", "provider"} {
		_, _, _, notifier, svc := newOrdenFixture(models.OrderPendiente, models.ItemLote)

		updated, err := svc.Cancel(context.Background(), "orden-1", actor)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelada, updated.Estado)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, updated.CounterpartyOf(actor), notifier.sent[0].userID)
	}
}

func TestOrdenCancelAcceptedRejected(t *testing.T) {
	_, _, _, _, svc := newOrdenFixture(models.OrderAceptada, models.ItemLote)

	_, err := svc.Cancel(context.Background(), "orden-1", "requester")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrdenStrangerRejected(t *testing.T) {
	_, _, _, _, svc := newOrdenFixture(models.OrderPendiente, models.ItemLote)

	_, err := svc.Cancel(context.Background(), "orden-1", "stranger")
	assert.ErrorIs(t, err, ErrNotParticipant)
}
