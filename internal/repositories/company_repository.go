package repositories

import (
	"context"
	"database/sql"

	"backend/internal/domain/models"
)

type CompanyRepository struct {
	DB *sql.DB
}

func (r CompanyRepository) GetByID(ctx context.Context, id int64) (models.Company, error) {
	var c models.Company
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, phone, split_code, created_at
		FROM companies WHERE id=? LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.SplitCode, &c.CreatedAt)
	return c, err
}

func (r CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, phone, split_code, created_at
		FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.SplitCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompanyRepository) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, company_id, plate_number, name, capacity
		FROM vehicles WHERE id=? LIMIT 1`, id).
		Scan(&v.ID, &v.CompanyID, &v.PlateNumber, &v.Name, &v.Capacity)
	return v, err
}
