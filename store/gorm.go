package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// GameRecord is the database row of one game.
type GameRecord struct {
	gorm.Model

	GameID       uuid.UUID    `gorm:"<-:create;type:varchar;size:36;uniqueIndex;not null"`
	State        string       `gorm:"type:varchar;size:64;not null"`
	SideToMove   movegen.Side `gorm:"not null"`
	Plies        int
	PositionHash int64 `gorm:"index"`
}

func recordOf(s board.Snapshot) GameRecord {
	return GameRecord{
		GameID:       s.ID,
		State:        s.State,
		SideToMove:   s.Side,
		Plies:        s.Plies,
		PositionHash: int64(s.Hash),
	}
}

func (r *GameRecord) snapshot() board.Snapshot {
	return board.Snapshot{
		ID:    r.GameID,
		State: r.State,
		Side:  r.SideToMove,
		Plies: r.Plies,
		Hash:  uint64(r.PositionHash),
	}
}

// GormStore keeps games in a SQL database through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm handle.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// OpenPostgres connects to PostgreSQL, sizes the connection pool and
// migrates the schema.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		QueryFields: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s := NewGormStore(db)
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	log.WithField("tables", "game_records").Info("store: postgres ready")
	return s, nil
}

// AutoMigrate creates or updates the games table.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&GameRecord{})
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) Create(ctx context.Context, snap board.Snapshot) error {
	rec := recordOf(snap)
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (board.Snapshot, error) {
	var rec GameRecord
	err := s.db.WithContext(ctx).Where(&GameRecord{GameID: id}).First(&rec).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return board.Snapshot{}, notFound(id)
	}
	if err != nil {
		return board.Snapshot{}, err
	}
	return rec.snapshot(), nil
}

func (s *GormStore) Update(ctx context.Context, snap board.Snapshot) error {
	rec := recordOf(snap)
	tx := s.db.WithContext(ctx).Model(&GameRecord{}).Where(&GameRecord{GameID: snap.ID}).Updates(map[string]interface{}{
		"state":         rec.State,
		"side_to_move":  rec.SideToMove,
		"plies":         rec.Plies,
		"position_hash": rec.PositionHash,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return notFound(snap.ID)
	}
	return nil
}

// List returns every game, oldest first.
func (s *GormStore) List(ctx context.Context) ([]board.Snapshot, error) {
	var recs []GameRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]board.Snapshot, len(recs))
	for i := range recs {
		out[i] = recs[i].snapshot()
	}
	return out, nil
}
