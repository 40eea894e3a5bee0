package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roa-marketplace-backend/internal/models"

	"github.com/google/uuid"
)

const maxProductoImages = 5

// ImagePresigner issues pre-signed upload URLs for producto images
type ImagePresigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
	UploadExpirySeconds() int
}

// ProductoService handles producto business logic
type ProductoService struct {
	productos ProductoStore
	images    ImagePresigner
}

// NewProductoService creates a new producto service
func NewProductoService(productos ProductoStore, images ImagePresigner) *ProductoService {
	return &ProductoService{
		productos: productos,
		images:    images,
	}
}

// ProductoInput carries the user-editable producto fields
type ProductoInput struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Disponible  *bool   `json:"disponible,omitempty"`
	OrigenROA   *string `json:"origen_roa,omitempty"`
}

func (in *ProductoInput) validate() error {
	if strings.TrimSpace(in.Nombre) == "" {
		return validationErr("nombre is required")
	}
	if strings.TrimSpace(in.Descripcion) == "" {
		return validationErr("descripcion is required")
	}
	return nil
}

// Create registers a new producto awaiting moderation
func (s *ProductoService) Create(ctx context.Context, userID string, input ProductoInput) (*models.Producto, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	disponible := true
	if input.Disponible != nil {
		disponible = *input.Disponible
	}
	now := time.Now()
	producto := &models.Producto{
		ID:          uuid.New().String(),
		UserID:      userID,
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		Disponible:  disponible,
		OrigenROA:   input.OrigenROA,
		Imagenes:    []string{},
		Status:      models.ModerationPendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productos.Create(ctx, producto); err != nil {
		return nil, fmt.Errorf("failed to create producto: %w", err)
	}
	return producto, nil
}

// ListMine retrieves the caller's productos
func (s *ProductoService) ListMine(ctx context.Context, userID string) ([]*models.Producto, error) {
	return s.productos.ListByUser(ctx, userID)
}

// ListAvailable retrieves approved productos marked disponible
func (s *ProductoService) ListAvailable(ctx context.Context) ([]*models.Producto, error) {
	return s.productos.ListAvailable(ctx)
}

// Update edits a producto. Only the owner may edit.
func (s *ProductoService) Update(ctx context.Context, productoID, userID string, input ProductoInput) (*models.Producto, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	producto, err := s.productos.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto.UserID != userID {
		return nil, ErrNotOwner
	}

	producto.Nombre = input.Nombre
	producto.Descripcion = input.Descripcion
	if input.Disponible != nil {
		producto.Disponible = *input.Disponible
	}
	producto.OrigenROA = input.OrigenROA
	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, fmt.Errorf("failed to update producto: %w", err)
	}
	return producto, nil
}

// ImageUpload is a pre-signed slot for one producto image
type ImageUpload struct {
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignImage reserves an image slot on the producto and returns a
// pre-signed upload URL. Productos carry at most five images.
func (s *ProductoService) PresignImage(ctx context.Context, productoID, userID, contentType string) (*ImageUpload, error) {
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		return nil, validationErr("content_type must be image/jpeg, image/png or image/webp")
	}

	producto, err := s.productos.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto.UserID != userID {
		return nil, ErrNotOwner
	}
	if len(producto.Imagenes) >= maxProductoImages {
		return nil, validationErr(fmt.Sprintf("producto already has %d images", maxProductoImages))
	}

	key := fmt.Sprintf("productos/%s/%s", producto.ID, uuid.New().String())
	uploadURL, err := s.images.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign image upload: %w", err)
	}

	imageURL := s.images.PublicURL(key)
	producto.Imagenes = append(producto.Imagenes, imageURL)
	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, fmt.Errorf("failed to record image slot: %w", err)
	}

	return &ImageUpload{
		UploadURL: uploadURL,
		ImageURL:  imageURL,
		ExpiresIn: s.images.UploadExpirySeconds(),
	}, nil
}
