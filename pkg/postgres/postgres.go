package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/wanderbook/wanderbook/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS experiences (
			id VARCHAR(64) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			short_description TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price_per_person NUMERIC(12,2) NOT NULL CHECK (price_per_person >= 0),
			currency VARCHAR(8) NOT NULL DEFAULT 'INR',
			images TEXT[] NOT NULL DEFAULT '{}',
			duration VARCHAR(64) NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			rating NUMERIC(3,1) NOT NULL DEFAULT 0,
			reviews INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS slots (
			slot_id VARCHAR(64) PRIMARY KEY,
			experience_id VARCHAR(64) NOT NULL REFERENCES experiences(id),
			date VARCHAR(32) NOT NULL,
			time VARCHAR(32) NOT NULL,
			capacity INTEGER NOT NULL CHECK (capacity > 0),
			booked INTEGER NOT NULL DEFAULT 0 CHECK (booked >= 0 AND booked <= capacity)
		)`,

		`CREATE TABLE IF NOT EXISTS promos (
			code VARCHAR(64) PRIMARY KEY,
			type VARCHAR(16) NOT NULL CHECK (type IN ('percent', 'flat')),
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id VARCHAR(64) PRIMARY KEY,
			experience_id VARCHAR(64) NOT NULL,
			slot_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			total_amount NUMERIC(12,2) NOT NULL,
			promo_code VARCHAR(64),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_slots_experience_id ON slots(experience_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_slot_id ON bookings(slot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_experience_id ON bookings(experience_id)`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_reviews ON experiences(reviews DESC, rating DESC)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedCatalog provisions development catalog data. The booking flow never
// writes these tables, so seeding only runs when the catalog is empty.
func SeedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM experiences`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []string{
		`INSERT INTO experiences (id, title, short_description, description, price_per_person, currency, images, duration, location, rating, reviews) VALUES
			('exp-kayak-udupi', 'Sunset Kayaking', 'Paddle through mangroves at golden hour',
			 'Glide along calm backwaters with a certified guide, ending with the sunset over the Arabian Sea.',
			 1200.00, 'INR', '{/images/kayak-1.jpg,/images/kayak-2.jpg}', '2.5 hours', 'Udupi, Karnataka', 4.8, 214),
			('exp-heritage-jaipur', 'Old City Heritage Walk', 'Stories behind the pink facades',
			 'A slow-paced morning walk covering stepwells, bazaars and rooftop views with a local historian.',
			 650.00, 'INR', '{/images/jaipur-1.jpg}', '3 hours', 'Jaipur, Rajasthan', 4.6, 157),
			('exp-dunes-jaisalmer', 'Desert Dunes Safari', 'Camel ride and dinner under the stars',
			 'An evening camel trek into the Sam dunes followed by folk music and a traditional dinner.',
			 2400.00, 'INR', '{/images/dunes-1.jpg,/images/dunes-2.jpg}', '6 hours', 'Jaisalmer, Rajasthan', 4.9, 98),
			('exp-spice-kochi', 'Spice Market Food Trail', 'Taste your way through Mattancherry',
			 'Six tasting stops across the old spice quarter, from filter coffee to seafood moilee.',
			 900.00, 'INR', '{/images/kochi-1.jpg}', '4 hours', 'Kochi, Kerala', 4.7, 203)`,

		`INSERT INTO slots (slot_id, experience_id, date, time, capacity, booked) VALUES
			('slot-kayak-1', 'exp-kayak-udupi', '2026-09-12', '16:30', 8, 0),
			('slot-kayak-2', 'exp-kayak-udupi', '2026-09-13', '16:30', 8, 0),
			('slot-heritage-1', 'exp-heritage-jaipur', '2026-09-12', '07:00', 12, 0),
			('slot-heritage-2', 'exp-heritage-jaipur', '2026-09-14', '07:00', 12, 0),
			('slot-dunes-1', 'exp-dunes-jaisalmer', '2026-09-15', '15:00', 6, 0),
			('slot-spice-1', 'exp-spice-kochi', '2026-09-12', '10:00', 10, 0),
			('slot-spice-2', 'exp-spice-kochi', '2026-09-13', '10:00', 10, 0)`,

		`INSERT INTO promos (code, type, amount, active) VALUES
			('SAVE10', 'percent', 10.00, TRUE),
			('FLAT200', 'flat', 200.00, TRUE),
			('WELCOME25', 'percent', 25.00, FALSE)`,
	}

	for _, seed := range seeds {
		if _, err := db.Exec(seed); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	log.Println("Catalog seed data inserted")
	return nil
}
