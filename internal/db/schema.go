package db

import "database/sql"

// EnsureSchema creates the core tables when missing. Idempotent; safe
// to run on every boot.
func EnsureSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(100) NOT NULL DEFAULT '',
			split_code VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			company_id BIGINT NOT NULL,
			plate_number VARCHAR(50) NOT NULL DEFAULT '',
			name VARCHAR(255) NOT NULL DEFAULT '',
			capacity INT NOT NULL,
			KEY idx_vehicle_company (company_id),
			CONSTRAINT fk_vehicle_company FOREIGN KEY (company_id)
				REFERENCES companies(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			company_id BIGINT NOT NULL,
			vehicle_id BIGINT NOT NULL,
			capacity INT NOT NULL,
			origin_city VARCHAR(255) NOT NULL,
			origin_state VARCHAR(255) NOT NULL DEFAULT '',
			destination_city VARCHAR(255) NOT NULL,
			destination_state VARCHAR(255) NOT NULL DEFAULT '',
			price BIGINT NOT NULL,
			departure DATETIME NOT NULL,
			duration_minutes INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_route_company (company_id),
			CONSTRAINT fk_route_company FOREIGN KEY (company_id)
				REFERENCES companies(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			route_id BIGINT NOT NULL,
			user_id BIGINT NULL,
			status VARCHAR(20) NOT NULL,
			origin VARCHAR(10) NOT NULL DEFAULT 'ONLINE',
			seat_label VARCHAR(50) NOT NULL,
			seat_count INT NOT NULL DEFAULT 1,
			guest_name VARCHAR(255) NOT NULL DEFAULT '',
			guest_phone VARCHAR(100) NOT NULL DEFAULT '',
			guest_email VARCHAR(255) NOT NULL DEFAULT '',
			emergency_contact VARCHAR(255) NOT NULL DEFAULT '',
			total_amount BIGINT NOT NULL,
			service_fee BIGINT NOT NULL DEFAULT 0,
			company_revenue BIGINT NOT NULL DEFAULT 0,
			payment_method VARCHAR(20) NOT NULL,
			payment_ref VARCHAR(255) NOT NULL DEFAULT '',
			proof_file VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_booking_route_status (route_id, status),
			CONSTRAINT fk_booking_route FOREIGN KEY (route_id)
				REFERENCES routes(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			company_id BIGINT NOT NULL,
			booking_id BIGINT NULL,
			type VARCHAR(20) NOT NULL,
			category VARCHAR(30) NOT NULL,
			amount BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'COMPLETED',
			description VARCHAR(500) NOT NULL DEFAULT '',
			reference VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_booking_type_category (booking_id, type, category),
			KEY idx_tx_company_status (company_id, status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS settings (
			` + "`key`" + ` VARCHAR(100) PRIMARY KEY,
			value VARCHAR(255) NOT NULL,
			version INT NOT NULL DEFAULT 1,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(100) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'customer',
			company_id BIGINT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
