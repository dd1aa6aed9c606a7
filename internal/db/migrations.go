package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS appointments (
			id            TEXT PRIMARY KEY,
			service_name  TEXT NOT NULL,
			customer_name TEXT,
			day           DATE NOT NULL,
			start_time    TIME NOT NULL,
			end_time      TIME NOT NULL,
			staff_id      TEXT,
			status        TEXT DEFAULT 'pending' CHECK(status IN ('pending', 'confirmed', 'completed', 'cancelled')),
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_day ON appointments(day);
		CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status);
		CREATE INDEX IF NOT EXISTS idx_appointments_staff ON appointments(staff_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating appointments table: %w", err)
	}

	return nil
}
