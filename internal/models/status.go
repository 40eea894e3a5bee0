package models

// ROAType enumerates the categories of exploitable organic waste a lote can carry.
type ROAType string

const (
	ROACascaraFruta    ROAType = "cascara_fruta"
	ROAPososCafe       ROAType = "posos_cafe"
	ROARestosVegetales ROAType = "restos_vegetales"
	ROACascaraHuevo    ROAType = "cascara_huevo"
	ROARestosCereales  ROAType = "restos_cereales"
	ROAOtros           ROAType = "otros"
)

// Valid reports whether t is a known waste type.
func (t ROAType) Valid() bool {
	switch t {
	case ROACascaraFruta, ROAPososCafe, ROARestosVegetales, ROACascaraHuevo, ROARestosCereales, ROAOtros:
		return true
	}
	return false
}

// BatchStatus is the lifecycle state of a lote. It is independent of the
// moderation status an admin assigns.
type BatchStatus string

const (
	BatchDisponible BatchStatus = "disponible"
	BatchReservado  BatchStatus = "reservado"
	BatchRecogido   BatchStatus = "recogido"
	BatchCancelado  BatchStatus = "cancelado"
)

// Valid reports whether s is a known lifecycle state.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchDisponible, BatchReservado, BatchRecogido, BatchCancelado:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle may move from s to next.
// recogido is terminal; cancelado lots may be reactivated.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	switch s {
	case BatchDisponible:
		return next == BatchReservado || next == BatchCancelado
	case BatchReservado:
		return next == BatchRecogido || next == BatchCancelado || next == BatchDisponible
	case BatchRecogido:
		return false
	case BatchCancelado:
		return next == BatchDisponible
	}
	return false
}

// ModerationStatus is the admin approval state of a lote or producto.
type ModerationStatus string

const (
	ModerationPendiente ModerationStatus = "pendiente"
	ModerationAprobado  ModerationStatus = "aprobado"
	ModerationRechazado ModerationStatus = "rechazado"
)

// Valid reports whether s is a known moderation state.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPendiente, ModerationAprobado, ModerationRechazado:
		return true
	}
	return false
}

// UserStatus is the admin-assigned account state of a profile.
type UserStatus string

const (
	UserActivo     UserStatus = "activo"
	UserSuspendido UserStatus = "suspendido"
	UserVerificado UserStatus = "verificado"
)

// Valid reports whether s is a known account state.
func (s UserStatus) Valid() bool {
	switch s {
	case UserActivo, UserSuspendido, UserVerificado:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an orden.
type OrderStatus string

const (
	OrderPendiente  OrderStatus = "pendiente"
	OrderAceptada   OrderStatus = "aceptada"
	OrderCompletada OrderStatus = "completada"
	OrderCancelada  OrderStatus = "cancelada"
)

// Valid reports whether s is a known order state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPendiente, OrderAceptada, OrderCompletada, OrderCancelada:
		return true
	}
	return false
}

// CanTransitionTo reports whether the order may move from s to next.
// completada and cancelada are terminal. An order can only be completed
// after it has been accepted.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPendiente:
		return next == OrderAceptada || next == OrderCancelada
	case OrderAceptada:
		return next == OrderCompletada
	case OrderCompletada, OrderCancelada:
		return false
	}
	return false
}

// ItemType distinguishes what an orden refers to.
type ItemType string

const (
	ItemLote     ItemType = "lote"
	ItemProducto ItemType = "producto"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemLote || t == ItemProducto
}
