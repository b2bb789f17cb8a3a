package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/mountain-explorer/internal/config"
	"go.uber.org/zap"
)

const (
	// pingTimeout - проверка соединения при старте
	pingTimeout = 5 * time.Second
	// defaultQueryTimeout ограничивает время одного запроса к базе
	defaultQueryTimeout = 5 * time.Second
)

// DB - пул соединений к базе состояний сессий
type DB struct {
	*sqlx.DB
	logger       *zap.Logger
	queryTimeout time.Duration
}

// New открывает пул через драйвер pgx и проверяет соединение
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	sqlxDB, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := sqlxDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s:%d: %w", cfg.DBName, cfg.Host, cfg.Port, err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return wrap(sqlxDB, logger), nil
}

// NewDBForTest оборачивает готовое соединение (testhelpers)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return wrap(sqlxDB, logger)
}

func wrap(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	return &DB{DB: sqlxDB, logger: logger, queryTimeout: defaultQueryTimeout}
}

// Health проверяет доступность базы для /health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// withTimeout ограничивает контекст запроса queryTimeout
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}
