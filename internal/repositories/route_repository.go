package repositories

import (
	"context"
	"database/sql"
	"time"

	"backend/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, company_id, vehicle_id, capacity,
	origin_city, origin_state, destination_city, destination_state,
	price, departure, duration_minutes, created_at, updated_at`

func (r RouteRepository) Insert(ctx context.Context, rt *models.Route) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes
			(company_id, vehicle_id, capacity,
			 origin_city, origin_state, destination_city, destination_state,
			 price, departure, duration_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.CompanyID, rt.VehicleID, rt.Capacity,
		rt.OriginCity, rt.OriginState, rt.DestinationCity, rt.DestinationState,
		rt.Price, rt.Departure, rt.DurationMinutes,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = id
	return nil
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	var rt models.Route
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+routeColumns+` FROM routes WHERE id=? LIMIT 1`, id).
		Scan(&rt.ID, &rt.CompanyID, &rt.VehicleID, &rt.Capacity,
			&rt.OriginCity, &rt.OriginState, &rt.DestinationCity, &rt.DestinationState,
			&rt.Price, &rt.Departure, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

// UpdateSchedule applies the controlled reschedule: new departure and
// (possibly unchanged) capacity. Validation happens in the service.
func (r RouteRepository) UpdateSchedule(ctx context.Context, id int64, departure time.Time, capacity int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE routes SET departure=?, capacity=?, updated_at=NOW()
		WHERE id=?`, departure, capacity, id)
	return err
}

func (r RouteRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.Route, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+routeColumns+` FROM routes WHERE company_id=? ORDER BY departure`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.CompanyID, &rt.VehicleID, &rt.Capacity,
			&rt.OriginCity, &rt.OriginState, &rt.DestinationCity, &rt.DestinationState,
			&rt.Price, &rt.Departure, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
