package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "kgob_user")
	password := getEnv("DB_PASSWORD", "kgob_password")
	dbname := getEnv("DB_NAME", "kgob_exit_planning")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		company VARCHAR(255),
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS assessment_results (
		id                 BIGSERIAL PRIMARY KEY,
		user_id            BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		assessment_key     VARCHAR(50) NOT NULL,
		per_category_score JSONB NOT NULL,
		final_score        DECIMAL(5,1) NOT NULL,
		tier               VARCHAR(20) NOT NULL,
		completed_at       TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_results_user ON assessment_results(user_id, completed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_results_user_key ON assessment_results(user_id, assessment_key, completed_at DESC);

	CREATE TABLE IF NOT EXISTS wealth_gap_snapshots (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		inputs     JSONB NOT NULL,
		result     JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_user ON wealth_gap_snapshots(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS user_phase_progress (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		phase        VARCHAR(50) NOT NULL,
		completed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, phase)
	);

	CREATE INDEX IF NOT EXISTS idx_phase_progress_user ON user_phase_progress(user_id);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent for databases created before the company column existed
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS company VARCHAR(255)`,
	}

	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
