package services

import (
	"context"
	"fmt"
	"sync"

	"roa-marketplace-backend/internal/models"
)

// In-memory stand-ins for the store interfaces. Each fake keeps just
// enough state for the behavior under test and records mutating calls.

type fakeLoteStore struct {
	lotes       map[string]*models.Lote
	listErr     error
	estadoCalls []string
}

func newFakeLoteStore(lotes ...*models.Lote) *fakeLoteStore {
	m := make(map[string]*models.Lote)
	for _, l := range lotes {
		m[l.ID] = l
	}
	return &fakeLoteStore{lotes: m}
}

func (f *fakeLoteStore) Create(_ context.Context, l *models.Lote) error {
	f.lotes[l.ID] = l
	return nil
}

func (f *fakeLoteStore) GetByID(_ context.Context, id string) (*models.Lote, error) {
	l, ok := f.lotes[id]
	if !ok {
		return nil, fmt.Errorf("lote not found")
	}
	return l, nil
}

func (f *fakeLoteStore) ListByUser(_ context.Context, userID string) ([]*models.Lote, error) {
	var out []*models.Lote
	for _, l := range f.lotes {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLoteStore) ListAvailable(_ context.Context, tipo *models.ROAType) ([]*models.Lote, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Lote
	for _, l := range f.lotes {
		if l.Estado != models.BatchDisponible || l.Status == models.ModerationRechazado {
			continue
		}
		if tipo != nil && l.TipoResiduo != *tipo {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLoteStore) Update(_ context.Context, l *models.Lote) error {
	f.lotes[l.ID] = l
	return nil
}

func (f *fakeLoteStore) UpdateEstado(_ context.Context, id string, estado models.BatchStatus) error {
	l, ok := f.lotes[id]
	if !ok {
		return fmt.Errorf("lote not found")
	}
	l.Estado = estado
	f.estadoCalls = append(f.estadoCalls, id+":"+string(estado))
	return nil
}

func (f *fakeLoteStore) Delete(_ context.Context, id string) error {
	delete(f.lotes, id)
	return nil
}

type fakeProductoStore struct {
	productos map[string]*models.Producto
}

func newFakeProductoStore(productos ...*models.Producto) *fakeProductoStore {
	m := make(map[string]*models.Producto)
	for _, p := range productos {
		m[p.ID] = p
	}
	return &fakeProductoStore{productos: m}
}

func (f *fakeProductoStore) Create(_ context.Context, p *models.Producto) error {
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoStore) GetByID(_ context.Context, id string) (*models.Producto, error) {
	p, ok := f.productos[id]
	if !ok {
		return nil, fmt.Errorf("producto not found")
	}
	return p, nil
}

func (f *fakeProductoStore) ListByUser(_ context.Context, userID string) ([]*models.Producto, error) {
	var out []*models.Producto
	for _, p := range f.productos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductoStore) ListAvailable(_ context.Context) ([]*models.Producto, error) {
	var out []*models.Producto
	for _, p := range f.productos {
		if p.Disponible && p.Status != models.ModerationRechazado {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductoStore) Update(_ context.Context, p *models.Producto) error {
	f.productos[p.ID] = p
	return nil
}

type fakeOrdenStore struct {
	ordenes     map[string]*models.Orden
	lotes       *fakeLoteStore
	estadoCalls []string
	jointCalls  []string
	jointErr    error
}

func newFakeOrdenStore(ordenes ...*models.Orden) *fakeOrdenStore {
	m := make(map[string]*models.Orden)
	for _, o := range ordenes {
		m[o.ID] = o
	}
	return &fakeOrdenStore{ordenes: m}
}

func (f *fakeOrdenStore) Create(_ context.Context, o *models.Orden) error {
	f.ordenes[o.ID] = o
	return nil
}

func (f *fakeOrdenStore) GetByID(_ context.Context, id string) (*models.Orden, error) {
	o, ok := f.ordenes[id]
	if !ok {
		return nil, fmt.Errorf("orden not found")
	}
	return o, nil
}

func (f *fakeOrdenStore) ListByParticipant(_ context.Context, userID string) ([]*models.Orden, error) {
	var out []*models.Orden
	for _, o := range f.ordenes {
		if o.IsParticipant(userID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdenStore) UpdateEstado(_ context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string) error {
	o, ok := f.ordenes[id]
	if !ok {
		return fmt.Errorf("orden not found")
	}
	o.Estado = estado
	if mensajeRespuesta != nil {
		o.MensajeRespuesta = mensajeRespuesta
	}
	f.estadoCalls = append(f.estadoCalls, id+":"+string(estado))
	return nil
}

func (f *fakeOrdenStore) UpdateEstadoWithLote(ctx context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string, loteID string, loteEstado models.BatchStatus) error {
	if f.jointErr != nil {
		return f.jointErr
	}
	if err := f.UpdateEstado(ctx, id, estado, mensajeRespuesta); err != nil {
		return err
	}
	f.jointCalls = append(f.jointCalls, id+":"+string(estado)+"+"+loteID+":"+string(loteEstado))
	if f.lotes != nil {
		return f.lotes.UpdateEstado(ctx, loteID, loteEstado)
	}
	return nil
}

type fakeCalificacionStore struct {
	created   []*models.Calificacion
	existing  map[string]bool
	average   float64
	count     int
	createErr error
}

func newFakeCalificacionStore() *fakeCalificacionStore {
	return &fakeCalificacionStore{existing: make(map[string]bool)}
}

func ratingKey(calificadorID, calificadoID, ordenID string) string {
	return calificadorID + "|" + calificadoID + "|" + ordenID
}

func (f *fakeCalificacionStore) Create(_ context.Context, c *models.Calificacion) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	f.existing[ratingKey(c.CalificadorID, c.CalificadoID, c.OrdenID)] = true
	return nil
}

func (f *fakeCalificacionStore) Exists(_ context.Context, calificadorID, calificadoID, ordenID string) (bool, error) {
	return f.existing[ratingKey(calificadorID, calificadoID, ordenID)], nil
}

func (f *fakeCalificacionStore) ListForUser(_ context.Context, calificadoID string) ([]*models.Calificacion, error) {
	var out []*models.Calificacion
	for _, c := range f.created {
		if c.CalificadoID == calificadoID && !c.Reportada {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCalificacionStore) AverageForUser(_ context.Context, _ string) (float64, error) {
	return f.average, nil
}

func (f *fakeCalificacionStore) CountForUser(_ context.Context, _ string) (int, error) {
	return f.count, nil
}

func (f *fakeCalificacionStore) SetReportada(_ context.Context, id string, reportada bool) error {
	for _, c := range f.created {
		if c.ID == id {
			c.Reportada = reportada
			return nil
		}
	}
	return fmt.Errorf("calificacion not found")
}

func (f *fakeCalificacionStore) Delete(_ context.Context, id, calificadorID string) error {
	for i, c := range f.created {
		if c.ID == id && c.CalificadorID == calificadorID {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("calificacion not found")
}

type fakeProfileStore struct {
	profiles map[string]*models.Profile
}

func newFakeProfileStore(profiles ...*models.Profile) *fakeProfileStore {
	m := make(map[string]*models.Profile)
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileStore{profiles: m}
}

func (f *fakeProfileStore) Create(_ context.Context, p *models.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found")
}

func (f *fakeProfileStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileStore) List(_ context.Context) ([]*models.Profile, error) {
	var out []*models.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileStore) Update(_ context.Context, p *models.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileStore) UpdatePushToken(_ context.Context, userID string, pushToken *string) error {
	p, ok := f.profiles[userID]
	if !ok {
		return fmt.Errorf("profile not found")
	}
	p.PushToken = pushToken
	return nil
}

func (f *fakeProfileStore) IsAdmin(_ context.Context, userID string) (bool, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return false, fmt.Errorf("profile not found")
	}
	return p.IsAdmin, nil
}

type fakeModerationStore struct {
	calls   int
	lastErr error
}

func (f *fakeModerationStore) ApplyStatus(_ context.Context, adminID, entityType, entityID, newStatus string, notes *string) (*models.AuditRecord, error) {
	f.calls++
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return &models.AuditRecord{
		AdminID:    adminID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     "cambio_status",
		NewStatus:  &newStatus,
		Notes:      notes,
	}, nil
}

type sentNotification struct {
	userID  string
	ordenID *string
	titulo  string
	tipo    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, ordenID *string, titulo, _ string, tipo string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{userID: userID, ordenID: ordenID, titulo: titulo, tipo: tipo})
}

type fakeNotificacionStore struct {
	created   []*models.Notificacion
	createErr error
	unread    int
}

func (f *fakeNotificacionStore) Create(_ context.Context, n *models.Notificacion) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificacionStore) ListByUser(_ context.Context, userID string) ([]*models.Notificacion, error) {
	var out []*models.Notificacion
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificacionStore) UnreadCount(_ context.Context, _ string) (int, error) {
	return f.unread, nil
}

func (f *fakeNotificacionStore) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.Leida = true
			return nil
		}
	}
	return fmt.Errorf("notificacion not found")
}

func (f *fakeNotificacionStore) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range f.created {
		if n.UserID == userID {
			n.Leida = true
		}
	}
	return nil
}

type fakeRealtime struct {
	online  map[string]bool
	sent    []*models.Notificacion
	sendErr error
}

func (f *fakeRealtime) SendNotificacion(_ string, n *models.Notificacion) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeRealtime) IsOnline(userID string) bool {
	return f.online[userID]
}

type fakePush struct {
	tokens []string
}

func (f *fakePush) Send(deviceToken, _, _ string) error {
	f.tokens = append(f.tokens, deviceToken)
	return nil
}
