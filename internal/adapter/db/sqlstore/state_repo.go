package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "userdeck/internal/domain/user"
)

// StateRepo stores session state in a SQL table through gorm. It works
// against PostgreSQL and SQLite alike.
type StateRepo struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
	log *zap.Logger
}

// NewStateRepo creates a new StateRepo. Rows not saved within ttl are
// treated as absent.
func NewStateRepo(db *gorm.DB, ttl time.Duration, log *zap.Logger) *StateRepo {
	return &StateRepo{db: db, ttl: ttl, now: time.Now, log: log}
}

// SessionSchema represents the database schema for the sessions table.
type SessionSchema struct {
	ID        string    `gorm:"primaryKey;size:64"` // Session ID from the browser cookie
	Data      string    `gorm:"type:text;not null"` // JSON-encoded state
	UpdatedAt time.Time `gorm:"not null;index"`     // Last save, drives expiry
}

// TableName specifies the table name for the SessionSchema model.
func (SessionSchema) TableName() string {
	return "sessions"
}

// Migrate creates or updates the sessions table.
func (r *StateRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SessionSchema{}); err != nil {
		return fmt.Errorf("failed to migrate sessions table: %w", err)
	}
	return nil
}

// Get loads the state for sessionID, or nil when there is none or it expired.
func (r *StateRepo) Get(ctx context.Context, sessionID string) (*domain.State, error) {
	var model SessionSchema
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if r.ttl > 0 && r.now().Sub(model.UpdatedAt) > r.ttl {
		r.log.Debug("session expired", zap.String("session_id", sessionID))
		if err := r.Delete(ctx, sessionID); err != nil {
			r.log.Warn("failed to drop expired session", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, nil
	}

	var state domain.State
	if err := json.Unmarshal([]byte(model.Data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

// Save upserts the state for sessionID.
func (r *StateRepo) Save(ctx context.Context, sessionID string, state domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	model := SessionSchema{ID: sessionID, Data: string(data), UpdatedAt: r.now().UTC()}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		r.log.Error("failed to save session", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session row.
func (r *StateRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Delete(&SessionSchema{}, "id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes every session older than the TTL and returns how many went.
func (r *StateRepo) PurgeExpired(ctx context.Context) (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}
	cutoff := r.now().UTC().Add(-r.ttl)
	res := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&SessionSchema{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		r.log.Info("purged expired sessions", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}
