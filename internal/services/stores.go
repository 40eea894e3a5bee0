package services

import (
	"context"

	"roa-marketplace-backend/internal/models"
)

// Store interfaces cover exactly what the services call. The repository
// package implements all of them; service tests use in-memory fakes.

// ProfileStore persists user profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
	UpdatePushToken(ctx context.Context, userID string, pushToken *string) error
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// LoteStore persists lotes.
type LoteStore interface {
	Create(ctx context.Context, l *models.Lote) error
	GetByID(ctx context.Context, id string) (*models.Lote, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Lote, error)
	ListAvailable(ctx context.Context, tipo *models.ROAType) ([]*models.Lote, error)
	Update(ctx context.Context, l *models.Lote) error
	UpdateEstado(ctx context.Context, id string, estado models.BatchStatus) error
	Delete(ctx context.Context, id string) error
}

// ProductoStore persists productos.
type ProductoStore interface {
	Create(ctx context.Context, p *models.Producto) error
	GetByID(ctx context.Context, id string) (*models.Producto, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Producto, error)
	ListAvailable(ctx context.Context) ([]*models.Producto, error)
	Update(ctx context.Context, p *models.Producto) error
}

// OrdenStore persists ordenes.
type OrdenStore interface {
	Create(ctx context.Context, o *models.Orden) error
	GetByID(ctx context.Context, id string) (*models.Orden, error)
	ListByParticipant(ctx context.Context, userID string) ([]*models.Orden, error)
	UpdateEstado(ctx context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string) error
	UpdateEstadoWithLote(ctx context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string, loteID string, loteEstado models.BatchStatus) error
}

// CalificacionStore persists calificaciones.
type CalificacionStore interface {
	Create(ctx context.Context, c *models.Calificacion) error
	Exists(ctx context.Context, calificadorID, calificadoID, ordenID string) (bool, error)
	ListForUser(ctx context.Context, calificadoID string) ([]*models.Calificacion, error)
	AverageForUser(ctx context.Context, calificadoID string) (float64, error)
	CountForUser(ctx context.Context, calificadoID string) (int, error)
	SetReportada(ctx context.Context, id string, reportada bool) error
	Delete(ctx context.Context, id, calificadorID string) error
}

// NotificacionStore persists notificaciones.
type NotificacionStore interface {
	Create(ctx context.Context, n *models.Notificacion) error
	ListByUser(ctx context.Context, userID string) ([]*models.Notificacion, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// ModerationStore applies an admin status override and writes its audit
// record in one atomic operation.
type ModerationStore interface {
	ApplyStatus(ctx context.Context, adminID, entityType, entityID, newStatus string, notes *string) (*models.AuditRecord, error)
}

// Notifier fans a state-change message out to a recipient. Delivery beyond
// the stored row is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID string, ordenID *string, titulo, mensaje, tipo string)
}
