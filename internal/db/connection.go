package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

// DBService wraps the shared database handle the repositories work against.
type DBService struct {
	DB *sql.DB
}

// NewDBService loads environment variables and opens the connection pool.
func NewDBService() (*DBService, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	connStr := os.Getenv("DB_CONNECTION_STRING")
	if connStr == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in environment variables")
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to the database: %v", err)
	}

	return &DBService{DB: db}, nil
}

// EnsureSchema creates the tables the scheduler needs when they do not exist
// yet. Schedules are stored denormalized as JSONB on the owning transaction.
func (s *DBService) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			amount NUMERIC(14, 2) NOT NULL,
			date DATE NOT NULL,
			status TEXT,
			schedule JSONB,
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			source_template_id TEXT,
			created_at BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_source_template ON transactions (source_template_id) WHERE source_template_id IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS predefined_categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL
		)`,
	}
	for _, statement := range statements {
		if _, err := s.DB.Exec(statement); err != nil {
			return fmt.Errorf("could not ensure schema: %w", err)
		}
	}
	return s.seedPredefinedCategories()
}

// seedPredefinedCategories inserts the default category set. Reruns are
// no-ops; categories a user renamed or removed are not resurrected beyond
// the name conflict guard.
func (s *DBService) seedPredefinedCategories() error {
	for _, category := range domain.DefaultPredefinedCategories() {
		_, err := s.DB.Exec(
			`INSERT INTO predefined_categories (name, type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			category.Name, category.Type,
		)
		if err != nil {
			return fmt.Errorf("could not seed category %q: %w", category.Name, err)
		}
	}
	return nil
}

// Health pings the database and reports its status.
func (s *DBService) Health() map[string]string {
	stats := make(map[string]string)

	err := s.DB.Ping()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close closes the database connection.
func (s *DBService) Close() error {
	log.Println("Closing database connection")
	return s.DB.Close()
}
