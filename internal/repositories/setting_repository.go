package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

const (
	keyCommissionRate     = "commission_rate"
	defaultCommissionRate = 5
)

// SettingRepository stores platform-wide mutable settings as versioned
// key-value rows. Reads go straight to the database; the commission rate
// gates real-money splits, so no caching layer sits in front of it.
type SettingRepository struct {
	DB *sql.DB
}

// GetCommissionRate returns the current platform commission percentage,
// defaulting to 5 when unset.
func (r SettingRepository) GetCommissionRate(ctx context.Context) (int64, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE `key`=? LIMIT 1", keyCommissionRate).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultCommissionRate, nil
	}
	if err != nil {
		return 0, err
	}
	rate, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || rate < 0 || rate > 100 {
		return defaultCommissionRate, nil
	}
	return rate, nil
}

// SetCommissionRate replaces the rate, bumping the row version. Already
// distributed bookings keep the split captured at their confirmation.
func (r SettingRepository) SetCommissionRate(ctx context.Context, rate int64) error {
	if rate < 0 || rate > 100 {
		return errors.New("rate harus 0-100")
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (`+"`key`"+`, value, version) VALUES (?, ?, 1)
		ON DUPLICATE KEY UPDATE value=VALUES(value), version=version+1`,
		keyCommissionRate, strconv.FormatInt(rate, 10))
	return err
}
