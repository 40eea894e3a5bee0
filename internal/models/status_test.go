package models

import "testing"

func TestBatchStatusTransitions(t *testing.T) {
	tests := []struct {
		from BatchStatus
		to   BatchStatus
		want bool
	}{
		{BatchDisponible, BatchReservado, true},
		{BatchDisponible, BatchCancelado, true},
		{BatchDisponible, BatchRecogido, false},
		{BatchDisponible, BatchDisponible, false},
		{BatchReservado, BatchRecogido, true},
		{BatchReservado, BatchCancelado, true},
		{BatchReservado, BatchDisponible, true},
		{BatchRecogido, BatchDisponible, false},
		{BatchRecogido, BatchReservado, false},
		{BatchRecogido, BatchCancelado, false},
		{BatchCancelado, BatchDisponible, true},
		{BatchCancelado, BatchReservado, false},
		{BatchCancelado, BatchRecogido, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderPendiente, OrderAceptada, true},
		{OrderPendiente, OrderCancelada, true},
		{OrderPendiente, OrderCompletada, false},
		{OrderAceptada, OrderCompletada, true},
		{OrderAceptada, OrderCancelada, false},
		{OrderCompletada, OrderPendiente, false},
		{OrderCompletada, OrderAceptada, false},
		{OrderCancelada, OrderPendiente, false},
		{OrderCancelada, OrderAceptada, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !ROAPososCafe.Valid() {
		t.Error("posos_cafe should be valid")
	}
	if ROAType("plastico").Valid() {
		t.Error("plastico should not be a valid ROA type")
	}
	if !ModerationAprobado.Valid() || ModerationStatus("activo").Valid() {
		t.Error("moderation status validity broken")
	}
	if !UserSuspendido.Valid() || UserStatus("aprobado").Valid() {
		t.Error("user status validity broken")
	}
	if !ItemLote.Valid() || ItemType("servicio").Valid() {
		t.Error("item type validity broken")
	}
	if BatchStatus("pendiente").Valid() {
		t.Error("pendiente is not a lifecycle state")
	}
}
