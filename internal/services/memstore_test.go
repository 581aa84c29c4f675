package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"backend/internal/domain/models"
)

// In-memory stores backing the service tests. All methods are
// mutex-guarded so the concurrency scenarios exercise real interleaving.

type memRoutes struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Route
}

func newMemRoutes() *memRoutes {
	return &memRoutes{nextID: 1, rows: map[int64]models.Route{}}
}

func (m *memRoutes) add(r models.Route) models.Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.rows[r.ID] = r
	return r
}

func (m *memRoutes) Insert(ctx context.Context, r *models.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	m.rows[r.ID] = *r
	return nil
}

func (m *memRoutes) GetByID(ctx context.Context, id int64) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return models.Route{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *memRoutes) UpdateSchedule(ctx context.Context, id int64, departure time.Time, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.Departure = departure
	r.Capacity = capacity
	m.rows[id] = r
	return nil
}

func (m *memRoutes) ListByCompany(ctx context.Context, companyID int64) ([]models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Route{}
	for _, r := range m.rows {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memBookings struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Booking
	routes *memRoutes // for company joins
}

func newMemBookings(routes *memRoutes) *memBookings {
	return &memBookings{nextID: 1, rows: map[int64]models.Booking{}, routes: routes}
}

func (m *memBookings) add(b models.Booking) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.nextID
		m.nextID++
	}
	m.rows[b.ID] = b
	return b
}

func (m *memBookings) Insert(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID
	m.nextID++
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return models.Booking{}, sql.ErrNoRows
	}
	return b, nil
}

func (m *memBookings) UpdateStatusFrom(ctx context.Context, id int64, from, to models.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	m.rows[id] = b
	return true, nil
}

func (m *memBookings) CountByRouteStatus(ctx context.Context, routeID int64, statuses []models.BookingStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.rows {
		if b.RouteID != routeID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				n += b.SeatCount
				break
			}
		}
	}
	return n, nil
}

func (m *memBookings) BulkTransition(ctx context.Context, routeID int64, from []models.BookingStatus, to models.BookingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var moved int64
	for id, b := range m.rows {
		if b.RouteID != routeID {
			continue
		}
		for _, s := range from {
			if b.Status == s {
				b.Status = to
				m.rows[id] = b
				moved++
				break
			}
		}
	}
	return moved, nil
}

func (m *memBookings) UpdateSplit(ctx context.Context, id int64, fee, revenue int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.ServiceFee = fee
	b.CompanyRevenue = revenue
	m.rows[id] = b
	return nil
}

func (m *memBookings) SumSplitByCompany(ctx context.Context, companyID int64, statuses []models.BookingStatus) (revenue, fee, gross int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		route, ok := m.routes.rows[b.RouteID]
		if !ok || route.CompanyID != companyID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				revenue += b.CompanyRevenue
				fee += b.ServiceFee
				gross += b.TotalAmount
				break
			}
		}
	}
	return revenue, fee, gross, nil
}

type memLedger struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Transaction
}

func newMemLedger() *memLedger {
	return &memLedger{nextID: 1}
}

func (m *memLedger) Insert(ctx context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	m.rows = append(m.rows, *t)
	return nil
}

func (m *memLedger) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, sql.ErrNoRows
}

func (m *memLedger) ExistsForBooking(ctx context.Context, bookingID int64, typ models.TxType, cat models.TxCategory) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.BookingID == bookingID && t.Type == typ && t.Category == cat {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) ListByCompany(ctx context.Context, companyID int64, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Transaction{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].CompanyID == companyID {
			out = append(out, m.rows[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memLedger) UpdateStatusIfPending(ctx context.Context, id int64, to models.TxStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.rows {
		if t.ID == id {
			if t.Status != models.TxPending {
				return false, nil
			}
			m.rows[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) all() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.rows))
	copy(out, m.rows)
	return out
}

type memCompanies struct {
	mu       sync.Mutex
	rows     map[int64]models.Company
	vehicles map[int64]models.Vehicle
}

func newMemCompanies() *memCompanies {
	return &memCompanies{rows: map[int64]models.Company{}, vehicles: map[int64]models.Vehicle{}}
}

func (m *memCompanies) add(c models.Company) models.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = c
	return c
}

func (m *memCompanies) addVehicle(v models.Vehicle) models.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[v.ID] = v
	return v
}

func (m *memCompanies) GetByID(ctx context.Context, id int64) (models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return models.Company{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *memCompanies) List(ctx context.Context) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Company{}
	for _, c := range m.rows {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanies) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return models.Vehicle{}, sql.ErrNoRows
	}
	return v, nil
}

type memSettings struct {
	mu   sync.Mutex
	rate int64
}

func (m *memSettings) GetCommissionRate(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rate == 0 {
		return 5, nil
	}
	return m.rate, nil
}

func (m *memSettings) set(rate int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}
