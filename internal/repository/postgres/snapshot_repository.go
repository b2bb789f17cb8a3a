package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"go.uber.org/zap"
)

type snapshotRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSnapshotRepository создает новый экземпляр snapshot repository
func NewSnapshotRepository(db *DB) repository.SnapshotRepository {
	return &snapshotRepository{
		db:     db,
		logger: db.logger,
	}
}

// snapshotRow - строка таблицы search_snapshots
type snapshotRow struct {
	SessionID    uuid.UUID `db:"session_id"`
	OriginLat    float64   `db:"origin_lat"`
	OriginLon    float64   `db:"origin_lon"`
	Address      string    `db:"address"`
	IsUserOrigin bool      `db:"is_user_origin"`
	RadiusMeters int       `db:"radius_meters"`
	MaxResults   int       `db:"max_results"`
	Mountains    string    `db:"mountains"`
	CreatedAt    time.Time `db:"created_at"`
}

func (row *snapshotRow) toDomain() (*domain.SearchSnapshot, error) {
	mountains := []domain.Mountain{}
	if len(row.Mountains) > 0 {
		if err := json.Unmarshal([]byte(row.Mountains), &mountains); err != nil {
			return nil, fmt.Errorf("unmarshal mountains: %w", err)
		}
	}

	return &domain.SearchSnapshot{
		SessionID:    row.SessionID,
		Origin:       domain.Coordinate{Lat: row.OriginLat, Lon: row.OriginLon},
		Address:      row.Address,
		IsUserOrigin: row.IsUserOrigin,
		RadiusMeters: row.RadiusMeters,
		MaxResults:   row.MaxResults,
		Mountains:    mountains,
		CreatedAt:    row.CreatedAt,
	}, nil
}

// SaveState сохраняет снимок поиска, перезаписывая предыдущий
func (r *snapshotRepository) SaveState(ctx context.Context, snapshot *domain.SearchSnapshot) error {
	mountains := snapshot.Mountains
	if mountains == nil {
		mountains = []domain.Mountain{}
	}
	payload, err := json.Marshal(mountains)
	if err != nil {
		return fmt.Errorf("marshal mountains: %w", err)
	}

	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO search_snapshots (
			session_id, origin_lat, origin_lon, address, is_user_origin,
			radius_meters, max_results, mountains, created_at, updated_at
		) VALUES (
			:session_id, :origin_lat, :origin_lon, :address, :is_user_origin,
			:radius_meters, :max_results, :mountains, :created_at, NOW()
		)
		ON CONFLICT (session_id) DO UPDATE SET
			origin_lat     = EXCLUDED.origin_lat,
			origin_lon     = EXCLUDED.origin_lon,
			address        = EXCLUDED.address,
			is_user_origin = EXCLUDED.is_user_origin,
			radius_meters  = EXCLUDED.radius_meters,
			max_results    = EXCLUDED.max_results,
			mountains      = EXCLUDED.mountains,
			created_at     = EXCLUDED.created_at,
			updated_at     = NOW()
	`

	row := snapshotRow{
		SessionID:    snapshot.SessionID,
		OriginLat:    snapshot.Origin.Lat,
		OriginLon:    snapshot.Origin.Lon,
		Address:      snapshot.Address,
		IsUserOrigin: snapshot.IsUserOrigin,
		RadiusMeters: snapshot.RadiusMeters,
		MaxResults:   snapshot.MaxResults,
		Mountains:    string(payload),
		CreatedAt:    createdAt,
	}

	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.NamedExecContext(qctx, query, row); err != nil {
		r.logger.Error("failed to save snapshot",
			zap.String("session_id", snapshot.SessionID.String()),
			zap.Error(err))
		return fmt.Errorf("save snapshot: %w", err)
	}

	r.logger.Debug("snapshot saved",
		zap.String("session_id", snapshot.SessionID.String()),
		zap.Int("mountains", len(mountains)))
	return nil
}

// LoadState возвращает снимок сессии, nil если его нет
func (r *snapshotRepository) LoadState(ctx context.Context, sessionID uuid.UUID) (*domain.SearchSnapshot, error) {
	query := `
		SELECT session_id, origin_lat, origin_lon, address, is_user_origin,
		       radius_meters, max_results, mountains, created_at
		FROM search_snapshots
		WHERE session_id = $1
	`

	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var row snapshotRow
	if err := r.db.GetContext(qctx, &row, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to load snapshot",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return row.toDomain()
}

// DeleteState удаляет снимок сессии
func (r *snapshotRepository) DeleteState(ctx context.Context, sessionID uuid.UUID) error {
	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(qctx, `DELETE FROM search_snapshots WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// PurgeOlderThan удаляет снимки, не обновлявшиеся дольше maxAgeSeconds
func (r *snapshotRepository) PurgeOlderThan(ctx context.Context, maxAgeSeconds int) (int64, error) {
	if maxAgeSeconds <= 0 {
		return 0, nil
	}

	query := `DELETE FROM search_snapshots WHERE updated_at < NOW() - make_interval(secs => $1)`

	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(qctx, query, maxAgeSeconds)
	if err != nil {
		r.logger.Error("failed to purge snapshots", zap.Int("max_age_seconds", maxAgeSeconds), zap.Error(err))
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge snapshots rows affected: %w", err)
	}

	if deleted > 0 {
		r.logger.Info("expired snapshots purged", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
