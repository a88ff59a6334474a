// Package store persists per-session battle records to SQLite so a
// report batch can be audited and replay-verified later.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/archanox/GUNRPG-sub001/internal/combat"
)

// BattleRecord is one executed session as stored. SnapshotHash is the
// pre-combat operator hash, ResultHash the post-combat one; a replay
// verifier re-executes from the seed and compares ResultHash.
type BattleRecord struct {
	ID            uint      `gorm:"primarykey"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	SessionID     string    `gorm:"uniqueIndex;size:36"`
	OperatorID    int
	OperatorName  string
	Seed          int64
	SnapshotHash  string `gorm:"size:64"`
	ResultHash    string `gorm:"size:64"`
	IsVictory     bool
	OperatorDied  bool
	XPGained      int
	TurnsSurvived int
	DamageTaken   float64
	EventCount    int
	Transcript    string // newline-joined battle log
}

// Store wraps the SQLite-backed record table.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open creates or opens the database at path and migrates the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	if err := db.AutoMigrate(&BattleRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrating schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("battle store ready")
	return &Store{db: db, log: log}, nil
}

// SaveSession builds and inserts the record for one executed session.
func (s *Store) SaveSession(sessionID uuid.UUID, snapshot combat.OperatorSnapshot, seed int64, res combat.ExecutionResult) error {
	lines := make([]string, 0, len(res.BattleLog))
	for _, e := range res.BattleLog {
		lines = append(lines, e.String())
	}
	rec := BattleRecord{
		SessionID:     sessionID.String(),
		OperatorID:    snapshot.OperatorID,
		OperatorName:  snapshot.Name,
		Seed:          seed,
		SnapshotHash:  snapshot.Hash(),
		ResultHash:    res.Result.Hash(),
		IsVictory:     res.IsVictory,
		OperatorDied:  res.OperatorDied,
		XPGained:      combat.XPForResult(res.OperatorDied, res.IsVictory),
		TurnsSurvived: res.TurnsSurvived,
		DamageTaken:   res.DamageTaken,
		EventCount:    len(res.BattleLog),
		Transcript:    strings.Join(lines, "\n"),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("store: saving session %s: %w", rec.SessionID, err)
	}
	s.log.Debug().
		Str("session", rec.SessionID).
		Int64("seed", seed).
		Bool("victory", rec.IsVictory).
		Msg("battle record saved")
	return nil
}

// BySession fetches one record by session ID.
func (s *Store) BySession(sessionID uuid.UUID) (*BattleRecord, error) {
	var rec BattleRecord
	err := s.db.Where("session_id = ?", sessionID.String()).First(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("store: loading session %s: %w", sessionID, err)
	}
	return &rec, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]BattleRecord, error) {
	var recs []BattleRecord
	err := s.db.Order("id desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("store: listing records: %w", err)
	}
	return recs, nil
}
