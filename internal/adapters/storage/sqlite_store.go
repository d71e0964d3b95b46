package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ports"
)

const maxRetries = 3

// SQLiteStore implements ports.SessionStore using GORM
type SQLiteStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionStore = (*SQLiteStore)(nil)

// gormLogger wraps the shiftclock logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	default:
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("SHIFTCLOCK_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and migrates the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %v", domain.ErrStoreUnavailable, err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	// BEGIN IMMEDIATE avoids read-to-write lock upgrades failing with SQLITE_BUSY.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_txlock=immediate", dbPath)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", domain.ErrStoreUnavailable, err)
	}

	if err := db.AutoMigrate(&SessionModel{}, &PauseModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	for _, stmt := range openRowIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Session store opened", "path", dbPath)
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateSession implements SessionWriter.CreateSession
func (s *SQLiteStore) CreateSession(ctx context.Context, ownerID string, startedAt time.Time) (domain.Session, error) {
	model := SessionModel{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		StartedAt: startedAt.UTC(),
		Status:    string(domain.StatusActive),
	}

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Create(&model).Error
	}, maxRetries)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Session{}, fmt.Errorf("owner %s already has an open session: %w", ownerID, err)
		}
		return domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	logging.Logger.Info("Session created", "session_id", model.ID, "owner_id", ownerID)
	return sessionModelToDomain(model), nil
}

// UpdateSession implements SessionWriter.UpdateSession.
// Ending a session closes its open pause at the same instant in the same transaction.
func (s *SQLiteStore) UpdateSession(ctx context.Context, id string, update ports.SessionUpdate) (domain.Session, error) {
	var result SessionModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var current SessionModel
			if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
				return err
			}

			columns := map[string]any{}
			if update.EndedAt != nil {
				if current.EndedAt != nil {
					return fmt.Errorf("session %s already ended: %w", id, domain.ErrConflict)
				}
				if update.EndedAt.Before(current.StartedAt) {
					return fmt.Errorf("session %s cannot end before it starts: %w", id, domain.ErrDataIntegrity)
				}
				if err := closeOpenPause(tx, id, update.EndedAt.UTC()); err != nil {
					return err
				}
				columns["ended_at"] = update.EndedAt.UTC()
			}
			if update.Status != nil {
				columns["status"] = string(*update.Status)
			}

			if len(columns) > 0 {
				if err := tx.Model(&current).Updates(columns).Error; err != nil {
					return err
				}
			}

			return loadSession(tx.Where("id = ?", id), &result)
		})
	}, maxRetries)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to update session %s: %w", id, err)
	}

	logging.Logger.Info("Session updated", "session_id", id, "status", result.Status)
	return sessionModelToDomain(result), nil
}

// closeOpenPause ends the session's open pause at endedAt, if there is one
func closeOpenPause(tx *gorm.DB, sessionID string, endedAt time.Time) error {
	var open []PauseModel
	if err := tx.Where("session_id = ? AND ended_at IS NULL", sessionID).Find(&open).Error; err != nil {
		return err
	}
	for _, p := range open {
		if endedAt.Before(p.StartedAt) {
			return fmt.Errorf("pause %s cannot end before it starts: %w", p.ID, domain.ErrDataIntegrity)
		}
		if err := tx.Model(&PauseModel{}).Where("id = ?", p.ID).Update("ended_at", endedAt).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreatePause implements PauseWriter.CreatePause.
// The session's stored status becomes paused in the same transaction.
func (s *SQLiteStore) CreatePause(ctx context.Context, sessionID string, startedAt time.Time) (domain.Pause, error) {
	model := PauseModel{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		StartedAt: startedAt.UTC(),
	}

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var session SessionModel
			if err := tx.Where("id = ?", sessionID).First(&session).Error; err != nil {
				return err
			}
			if session.EndedAt != nil {
				return fmt.Errorf("session %s already ended: %w", sessionID, domain.ErrConflict)
			}
			if model.StartedAt.Before(session.StartedAt) {
				return fmt.Errorf("pause cannot start before session %s: %w", sessionID, domain.ErrDataIntegrity)
			}

			if err := tx.Create(&model).Error; err != nil {
				return err
			}
			return tx.Model(&session).Update("status", string(domain.StatusPaused)).Error
		})
	}, maxRetries)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Pause{}, fmt.Errorf("failed to pause session %s: %w", sessionID, err)
		}
		return domain.Pause{}, fmt.Errorf("failed to create pause: %w", err)
	}

	logging.Logger.Info("Pause created", "pause_id", model.ID, "session_id", sessionID)
	return pauseModelToDomain(model), nil
}

// UpdatePause implements PauseWriter.UpdatePause by closing the pause at endedAt.
// The session's stored status becomes active again in the same transaction.
func (s *SQLiteStore) UpdatePause(ctx context.Context, id string, endedAt time.Time) (domain.Pause, error) {
	var model PauseModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				return err
			}
			if model.EndedAt != nil {
				return fmt.Errorf("pause %s already closed: %w", id, domain.ErrConflict)
			}
			if endedAt.Before(model.StartedAt) {
				return fmt.Errorf("pause %s cannot end before it starts: %w", id, domain.ErrDataIntegrity)
			}

			end := endedAt.UTC()
			res := tx.Model(&PauseModel{}).
				Where("id = ? AND ended_at IS NULL", id).
				Update("ended_at", end)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("pause %s already closed: %w", id, domain.ErrConflict)
			}
			model.EndedAt = &end

			return tx.Model(&SessionModel{}).
				Where("id = ? AND ended_at IS NULL", model.SessionID).
				Update("status", string(domain.StatusActive)).Error
		})
	}, maxRetries)
	if err != nil {
		return domain.Pause{}, fmt.Errorf("failed to close pause %s: %w", id, err)
	}

	logging.Logger.Info("Pause closed", "pause_id", id, "session_id", model.SessionID)
	return pauseModelToDomain(model), nil
}

// GetOpenSession implements SessionReader.GetOpenSession
func (s *SQLiteStore) GetOpenSession(ctx context.Context, ownerID string) (*domain.Session, error) {
	var model SessionModel

	err := withRetry(func() error {
		return loadSession(s.db.WithContext(ctx).Where("owner_id = ? AND ended_at IS NULL", ownerID), &model)
	}, maxRetries)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session for %s: %w", ownerID, err)
	}

	session := sessionModelToDomain(model)
	return &session, nil
}

// GetSession implements SessionReader.GetSession
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (domain.Session, error) {
	var model SessionModel

	err := withRetry(func() error {
		return loadSession(s.db.WithContext(ctx).Where("id = ?", id), &model)
	}, maxRetries)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, err)
	}

	return sessionModelToDomain(model), nil
}

// ListSessions implements SessionReader.ListSessions
func (s *SQLiteStore) ListSessions(ctx context.Context, ownerID string) ([]domain.Session, error) {
	var models []SessionModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).
			Where("owner_id = ?", ownerID).
			Order("started_at DESC").
			Preload("Pauses", orderPauses).
			Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for %s: %w", ownerID, err)
	}

	sessions := make([]domain.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, sessionModelToDomain(m))
	}
	return sessions, nil
}

// loadSession loads the first session matched by query together with its pauses
func loadSession(query *gorm.DB, dest *SessionModel) error {
	return query.Preload("Pauses", orderPauses).First(dest).Error
}

func orderPauses(db *gorm.DB) *gorm.DB {
	return db.Order("started_at ASC, created_at ASC")
}

// withRetry runs fn, retrying on SQLITE_BUSY/SQLITE_LOCKED, and translates the final
// error into a domain error kind
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			logging.Logger.Debug("Database busy, retrying", "attempt", i+1, "error", err)
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return translateError(err)
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, translateError(err))
}

// translateError maps GORM and SQLite errors onto domain error kinds.
// Errors already carrying a domain kind are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{domain.ErrConflict, domain.ErrNotFound, domain.ErrStoreUnavailable, domain.ErrDataIntegrity} {
		if errors.Is(err, kind) {
			return err
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
				return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
			}
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr,
			sqlite3.ErrReadonly, sqlite3.ErrFull, sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	if strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}
