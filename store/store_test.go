package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edjones079/chess-ai-engine/board"
	cerrors "github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
)

func startSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	return board.NewGame(movegen.NewGenerator(nil), board.StartPosition()).Snapshot()
}

func TestMemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	a, b := startSnapshot(t), startSnapshot(t)
	for _, snap := range []board.Snapshot{a, b} {
		if err := s.Create(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Create(ctx, a); err == nil {
		t.Error("duplicate Create succeeded")
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Errorf("Get (-want +got):\n%s", diff)
	}

	a.Plies, a.Side = 1, movegen.Black
	if err := s.Update(ctx, a); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]board.Snapshot{a, b}, list); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
}

func TestMemStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	id := uuid.NewV4()
	if _, err := s.Get(ctx, id); !errors.Is(err, cerrors.ErrGameNotFound) {
		t.Errorf("Get error = %v", err)
	}
	if err := s.Update(ctx, board.Snapshot{ID: id}); !errors.Is(err, cerrors.ErrGameNotFound) {
		t.Errorf("Update error = %v", err)
	}
}

func TestMemStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := board.Snapshot{ID: uuid.NewV4(), State: strings.Repeat("0", 64)}
			if err := s.Create(ctx, snap); err != nil {
				t.Error(err)
			}
			if _, err := s.Get(ctx, snap.ID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if list, _ := s.List(ctx); len(list) != 16 {
		t.Errorf("List has %d games, want 16", len(list))
	}
}

func TestRecordConversion(t *testing.T) {
	snap := startSnapshot(t)
	snap.Hash = 1<<63 | 12345
	rec := recordOf(snap)
	if rec.PositionHash >= 0 {
		t.Errorf("high hash bit should map to a negative column value, got %d", rec.PositionHash)
	}
	if diff := cmp.Diff(snap, rec.snapshot()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// dryRunStore opens a postgres dialect without a server and records the SQL
// each operation would send.
func dryRunStore(t *testing.T) (*GormStore, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost dbname=chess_test sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	var statements []string
	capture := func(db *gorm.DB) { statements = append(statements, db.Statement.SQL.String()) }
	if err := db.Callback().Create().After("gorm:create").Register("test:capture_create", capture); err != nil {
		t.Fatal(err)
	}
	if err := db.Callback().Query().After("gorm:query").Register("test:capture_query", capture); err != nil {
		t.Fatal(err)
	}
	if err := db.Callback().Update().After("gorm:update").Register("test:capture_update", capture); err != nil {
		t.Fatal(err)
	}
	return NewGormStore(db), &statements
}

func TestGormStore_SQL(t *testing.T) {
	ctx := context.Background()
	s, statements := dryRunStore(t)
	snap := startSnapshot(t)

	if err := s.Create(ctx, snap); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Get(ctx, snap.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	// A dry run affects no rows, so Update reports the game as missing.
	if err := s.Update(ctx, snap); !errors.Is(err, cerrors.ErrGameNotFound) {
		t.Fatalf("Update: %v", err)
	}
	if _, err := s.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(*statements) != 4 {
		t.Fatalf("captured %d statements, want 4: %q", len(*statements), *statements)
	}
	want := []struct {
		prefix   string
		contains []string
	}{
		{`INSERT INTO "game_records"`, []string{`"game_id"`, `"state"`, `"side_to_move"`, `"position_hash"`}},
		{`SELECT`, []string{`FROM "game_records"`, `"game_records"."game_id" = $1`, `"deleted_at" IS NULL`, `LIMIT 1`}},
		{`UPDATE "game_records" SET`, []string{`"plies"=`, `"state"=`, `"game_records"."game_id" = `}},
		{`SELECT`, []string{`FROM "game_records"`, `ORDER BY id`}},
	}
	for i, w := range want {
		stmt := (*statements)[i]
		if !strings.HasPrefix(stmt, w.prefix) {
			t.Errorf("statement %d = %q, want prefix %q", i, stmt, w.prefix)
		}
		for _, c := range w.contains {
			if !strings.Contains(stmt, c) {
				t.Errorf("statement %d = %q, missing %q", i, stmt, c)
			}
		}
	}
}
