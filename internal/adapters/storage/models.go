package storage

import "time"

// SessionModel is the GORM model for sessions table
type SessionModel struct {
	CreatedAt time.Time
	EndedAt   *time.Time   `gorm:"default:null"`
	ID        string       `gorm:"primaryKey"`
	OwnerID   string       `gorm:"not null;index:idx_sessions_owner_started,priority:1"`
	Pauses    []PauseModel `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	StartedAt time.Time    `gorm:"not null;index:idx_sessions_owner_started,priority:2"`
	Status    string       `gorm:"not null;default:'active';check:chk_sessions_status,status IN ('active','paused','completed')"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// PauseModel is the GORM model for pauses table
type PauseModel struct {
	CreatedAt time.Time
	EndedAt   *time.Time `gorm:"default:null"`
	ID        string     `gorm:"primaryKey"`
	SessionID string     `gorm:"not null;index:idx_pauses_session_started,priority:1"`
	StartedAt time.Time  `gorm:"not null;index:idx_pauses_session_started,priority:2"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PauseModel) TableName() string { return "pauses" }

// Partial unique indexes backing the one-open-session-per-owner and
// one-open-pause-per-session rules. GORM tags cannot express the WHERE clause.
var openRowIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_sessions_open_owner ON sessions(owner_id) WHERE ended_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_pauses_open_session ON pauses(session_id) WHERE ended_at IS NULL`,
}
