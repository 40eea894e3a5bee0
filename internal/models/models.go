package models

import "time"

// Profile represents a user account in the marketplace.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	UserType     *string   `json:"user_type,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	LocationLat  *float64  `json:"location_lat,omitempty"`
	LocationLng  *float64  `json:"location_lng,omitempty"`
	PushToken    *string   `json:"push_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Lote represents a posted quantity of organic waste offered by a generator.
type Lote struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	TipoResiduo     ROAType          `json:"tipo_residuo"`
	PesoEstimado    float64          `json:"peso_estimado"`
	UbicacionLat    float64          `json:"ubicacion_lat"`
	UbicacionLng    float64          `json:"ubicacion_lng"`
	Direccion       *string          `json:"direccion,omitempty"`
	FechaDisponible *time.Time       `json:"fecha_disponible,omitempty"`
	Descripcion     *string          `json:"descripcion,omitempty"`
	Estado          BatchStatus      `json:"estado"`
	Status          ModerationStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Producto represents a transformed good offered for exchange.
type Producto struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion"`
	Disponible  bool             `json:"disponible"`
	OrigenROA   *string          `json:"origen_roa,omitempty"`
	Imagenes    []string         `json:"imagenes"`
	Status      ModerationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Orden represents a request to obtain a lote or producto from its owner.
type Orden struct {
	ID                   string      `json:"id"`
	SolicitanteID        string      `json:"solicitante_id"`
	ProveedorID          string      `json:"proveedor_id"`
	TipoItem             ItemType    `json:"tipo_item"`
	ItemID               string      `json:"item_id"`
	CantidadSolicitada   int         `json:"cantidad_solicitada"`
	FechaPropuestaRetiro *time.Time  `json:"fecha_propuesta_retiro,omitempty"`
	MensajeSolicitud     *string     `json:"mensaje_solicitud,omitempty"`
	MensajeRespuesta     *string     `json:"mensaje_respuesta,omitempty"`
	Estado               OrderStatus `json:"estado"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// IsParticipant reports whether userID is one of the two order parties.
func (o *Orden) IsParticipant(userID string) bool {
	return o.SolicitanteID == userID || o.ProveedorID == userID
}

// CounterpartyOf returns the other participant's ID. The caller must
// already be a participant.
func (o *Orden) CounterpartyOf(userID string) string {
	if o.SolicitanteID == userID {
		return o.ProveedorID
	}
	return o.SolicitanteID
}

// Calificacion is a 1-5 score one order participant gives the other after
// the order completes.
type Calificacion struct {
	ID            string    `json:"id"`
	CalificadorID string    `json:"calificador_id"`
	CalificadoID  string    `json:"calificado_id"`
	OrdenID       string    `json:"orden_id"`
	ProductoID    *string   `json:"producto_id,omitempty"`
	Puntuacion    int       `json:"puntuacion"`
	Comentario    *string   `json:"comentario,omitempty"`
	Reportada     bool      `json:"reportada"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Notificacion is an in-app message created as a side effect of other
// entities' state changes. It belongs exclusively to its recipient.
type Notificacion struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	OrdenID   *string   `json:"orden_id,omitempty"`
	Titulo    string    `json:"titulo"`
	Mensaje   string    `json:"mensaje"`
	Tipo      string    `json:"tipo"`
	Leida     bool      `json:"leida"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditRecord is an append-only row written for every administrative
// status override.
type AuditRecord struct {
	ID             string    `json:"id"`
	AdminID        string    `json:"admin_id"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	Action         string    `json:"action"`
	PreviousStatus *string   `json:"previous_status,omitempty"`
	NewStatus      *string   `json:"new_status,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
