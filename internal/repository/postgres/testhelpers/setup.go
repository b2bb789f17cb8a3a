package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/repository/postgres"
	"go.uber.org/zap"
)

// tables очищаются между тестами
var tables = []string{"search_snapshots"}

// TestDB - соединение с тестовой базой
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// testConfig собирает параметры из TEST_DB_* переменных
func testConfig() config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	if err != nil {
		port = 5433
	}
	return config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "mountains_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// SetupTestDB подключается к тестовой базе.
// Тест пропускается, если база недоступна.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	cfg := testConfig()
	db, err := connect(cfg.DSN(), 3, 200*time.Millisecond)
	if err != nil {
		t.Skipf("PostgreSQL %s:%d not available for integration tests: %v", cfg.Host, cfg.Port, err)
	}

	return &TestDB{DB: db, Logger: zap.NewNop()}
}

func connect(dsn string, attempts int, delay time.Duration) (*sqlx.DB, error) {
	var err error
	for i := 0; i < attempts; i++ {
		var db *sqlx.DB
		if db, err = sqlx.Connect("postgres", dsn); err == nil {
			return db, nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, err
}

// SnapshotRepository возвращает репозиторий снимков поверх тестовой базы
func (tdb *TestDB) SnapshotRepository() repository.SnapshotRepository {
	return postgres.NewSnapshotRepository(postgres.NewDBForTest(tdb.DB, tdb.Logger))
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup очищает таблицы
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range tables {
		if _, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
