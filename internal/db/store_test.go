package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/toeirei/ircloner/internal/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ir_remotes.db")
	s, err := NewStore(TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s, dsn
}

func TestNewStore_SchemaCreatedIdempotently(t *testing.T) {
	_, dsn := newTestStore(t)

	// A second store on the same file must not fail on existing tables.
	if _, err := NewStore(TypeSQLite, dsn); err != nil {
		t.Fatalf("second NewStore failed: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sql.DB for inspection: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	for _, table := range []string{"Remote", "Key"} {
		var name string
		err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestNewStore_UnsupportedType(t *testing.T) {
	if _, err := NewStore("oracle", "x"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestCreateRemote_DuplicateName(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRemote(ctx, "Samsung TV", "Living room TV")
	if err != nil {
		t.Fatalf("unexpected error creating remote: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	_, err = s.CreateRemote(ctx, "Samsung TV", "")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got: %v", err)
	}
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected error to match ErrDuplicate, got: %v", err)
	}

	remotes, err := s.ListRemotes(ctx)
	if err != nil {
		t.Fatalf("ListRemotes failed: %v", err)
	}
	if len(remotes) != 1 {
		t.Fatalf("expected 1 remote after duplicate insert, got %d", len(remotes))
	}
}

func TestCreateRemote_CaseSensitiveNames(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateRemote(ctx, "tv", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateRemote(ctx, "TV", ""); err != nil {
		t.Fatalf("names differing in case should both be accepted: %v", err)
	}
}

func TestCreateRemote_EmptyName(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.CreateRemote(context.Background(), "  ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestListRemotes_OrderedByName(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, n := range []string{"Sony Receiver", "Samsung TV", "LG Soundbar"} {
		if _, err := s.CreateRemote(ctx, n, ""); err != nil {
			t.Fatalf("CreateRemote(%q) failed: %v", n, err)
		}
	}

	remotes, err := s.ListRemotes(ctx)
	if err != nil {
		t.Fatalf("ListRemotes failed: %v", err)
	}
	want := []string{"LG Soundbar", "Samsung TV", "Sony Receiver"}
	if len(remotes) != len(want) {
		t.Fatalf("expected %d remotes, got %d", len(want), len(remotes))
	}
	for i, r := range remotes {
		if r.Name != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], r.Name)
		}
	}
}

func TestGetRemote(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRemote(ctx, "Samsung TV", "Living room TV")
	if err != nil {
		t.Fatalf("CreateRemote failed: %v", err)
	}

	r, err := s.GetRemote(ctx, id)
	if err != nil {
		t.Fatalf("GetRemote failed: %v", err)
	}
	if r == nil || r.Name != "Samsung TV" || r.Comment != "Living room TV" {
		t.Fatalf("unexpected remote: %+v", r)
	}

	missing, err := s.GetRemote(ctx, id+100)
	if err != nil {
		t.Fatalf("expected no error for missing remote, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing remote, got %+v", missing)
	}
}

func TestUpsertKey_ReplacesExistingRow(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rid, err := s.CreateRemote(ctx, "Samsung TV", "")
	if err != nil {
		t.Fatalf("CreateRemote failed: %v", err)
	}

	first := model.Key{RemoteID: rid, Protocol: "NEC", Address: "0xFF629D", Command: "0x0", KeyName: "Power", Comment: "Power on/off"}
	if err := s.UpsertKey(ctx, first); err != nil {
		t.Fatalf("first UpsertKey failed: %v", err)
	}
	keys, err := s.ListKeysForRemote(ctx, rid)
	if err != nil || len(keys) != 1 {
		t.Fatalf("expected 1 key after first upsert, got %d (err=%v)", len(keys), err)
	}
	firstID := keys[0].ID

	second := model.Key{RemoteID: rid, Protocol: "NEC", Address: "0xAA11", Command: "0x2", KeyName: "Power"}
	if err := s.UpsertKey(ctx, second); err != nil {
		t.Fatalf("second UpsertKey failed: %v", err)
	}

	keys, err = s.ListKeysForRemote(ctx, rid)
	if err != nil {
		t.Fatalf("ListKeysForRemote failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected exactly one Power row, got %d", len(keys))
	}
	k := keys[0]
	if k.Protocol != "NEC" || k.Address != "0xAA11" || k.Command != "0x2" {
		t.Fatalf("expected latest values, got %+v", k)
	}
	if k.Comment != "" {
		t.Fatalf("expected comment to be overwritten with empty, got %q", k.Comment)
	}
	if k.ID != firstID {
		t.Fatalf("expected surrogate id %d to be kept, got %d", firstID, k.ID)
	}
}

func TestUpsertKey_SameNameDifferentRemotes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tv, _ := s.CreateRemote(ctx, "Samsung TV", "")
	rx, _ := s.CreateRemote(ctx, "Sony Receiver", "")

	if err := s.UpsertKey(ctx, model.Key{RemoteID: tv, Protocol: "NEC", Address: "0x1", Command: "0x1", KeyName: "Power"}); err != nil {
		t.Fatalf("UpsertKey tv failed: %v", err)
	}
	if err := s.UpsertKey(ctx, model.Key{RemoteID: rx, Protocol: "RC5", Address: "0x1234", Command: "0x5678", KeyName: "Power"}); err != nil {
		t.Fatalf("UpsertKey receiver failed: %v", err)
	}

	for _, rid := range []int64{tv, rx} {
		keys, err := s.ListKeysForRemote(ctx, rid)
		if err != nil {
			t.Fatalf("ListKeysForRemote failed: %v", err)
		}
		if len(keys) != 1 {
			t.Fatalf("remote %d: expected 1 key, got %d", rid, len(keys))
		}
	}
}

func TestUpsertKey_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertKey(ctx, model.Key{RemoteID: 1, KeyName: ""}); !errors.Is(err, ErrEmptyKeyName) {
		t.Fatalf("expected ErrEmptyKeyName, got %v", err)
	}
	if err := s.UpsertKey(ctx, model.Key{RemoteID: 42, Protocol: "NEC", Address: "0x1", Command: "0x1", KeyName: "Power"}); !errors.Is(err, ErrUnknownRemote) {
		t.Fatalf("expected ErrUnknownRemote, got %v", err)
	}
}

func TestListKeysForRemote_OrderedByKeyName(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rid, _ := s.CreateRemote(ctx, "Samsung TV", "")
	for _, n := range []string{"Volume Up", "Mute", "Power"} {
		if err := s.UpsertKey(ctx, model.Key{RemoteID: rid, Protocol: "NEC", Address: "0xFF", Command: "0x0", KeyName: n}); err != nil {
			t.Fatalf("UpsertKey(%q) failed: %v", n, err)
		}
	}

	keys, err := s.ListKeysForRemote(ctx, rid)
	if err != nil {
		t.Fatalf("ListKeysForRemote failed: %v", err)
	}
	want := []string{"Mute", "Power", "Volume Up"}
	for i, k := range keys {
		if k.KeyName != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], k.KeyName)
		}
	}

	empty, err := s.ListKeysForRemote(ctx, rid+1)
	if err != nil {
		t.Fatalf("ListKeysForRemote for unknown remote failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no keys, got %d", len(empty))
	}
}

func TestWithDB_OpenFailure(t *testing.T) {
	s, _ := newTestStore(t)

	prev := sqlOpenFunc
	sqlOpenFunc = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}
	defer func() { sqlOpenFunc = prev }()

	if _, err := s.ListRemotes(context.Background()); err == nil {
		t.Fatalf("expected error when database cannot be opened")
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n CREATE TABLE b (y INT);\n")
	if len(got) != 2 || got[0] != "CREATE TABLE a (x INT)" || got[1] != "CREATE TABLE b (y INT)" {
		t.Fatalf("unexpected statements: %q", got)
	}
}
