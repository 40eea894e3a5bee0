package services

import (
	"context"

	"roa-marketplace-backend/internal/models"
)

// Full-table listing interfaces for the moderation dashboard.
type LoteLister interface {
	List(ctx context.Context) ([]*models.Lote, error)
}

type ProductoLister interface {
	List(ctx context.Context) ([]*models.Producto, error)
}

type OrdenLister interface {
	List(ctx context.Context) ([]*models.Orden, error)
}

type CalificacionLister interface {
	List(ctx context.Context) ([]*models.Calificacion, error)
}

type AuditLister interface {
	List(ctx context.Context) ([]*models.AuditRecord, error)
}

// AdminService serves the moderation dashboard's aggregate views. Role
// enforcement happens at the route; reported ratings and unapproved
// content are visible here on purpose.
type AdminService struct {
	profiles       ProfileStore
	lotes          LoteLister
	productos      ProductoLister
	ordenes        OrdenLister
	calificaciones CalificacionLister
	auditorias     AuditLister
}

// NewAdminService creates a new admin service
func NewAdminService(profiles ProfileStore, lotes LoteLister, productos ProductoLister, ordenes OrdenLister, calificaciones CalificacionLister, auditorias AuditLister) *AdminService {
	return &AdminService{
		profiles:       profiles,
		lotes:          lotes,
		productos:      productos,
		ordenes:        ordenes,
		calificaciones: calificaciones,
		auditorias:     auditorias,
	}
}

func (s *AdminService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *AdminService) ListLotes(ctx context.Context) ([]*models.Lote, error) {
	return s.lotes.List(ctx)
}

func (s *AdminService) ListProductos(ctx context.Context) ([]*models.Producto, error) {
	return s.productos.List(ctx)
}

func (s *AdminService) ListOrdenes(ctx context.Context) ([]*models.Orden, error) {
	return s.ordenes.List(ctx)
}

func (s *AdminService) ListCalificaciones(ctx context.Context) ([]*models.Calificacion, error) {
	return s.calificaciones.List(ctx)
}

func (s *AdminService) ListAuditorias(ctx context.Context) ([]*models.AuditRecord, error) {
	return s.auditorias.List(ctx)
}
