// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/ircloner/internal/model"
	"github.com/uptrace/bun"
)

// RemoteModel maps the `Remote` table for Bun queries.
type RemoteModel struct {
	bun.BaseModel `bun:"table:Remote"`
	ID            int64          `bun:"id,pk,autoincrement"`
	Name          string         `bun:"name"`
	Comment       sql.NullString `bun:"comment"`
}

// KeyModel maps the `Key` table for Bun queries.
type KeyModel struct {
	bun.BaseModel `bun:"table:Key"`
	ID            int64          `bun:"id,pk,autoincrement"`
	RemoteID      int64          `bun:"remote_id"`
	Protocol      string         `bun:"protocol"`
	Address       string         `bun:"address"`
	Command       string         `bun:"command"`
	KeyName       string         `bun:"key_name"`
	Comment       sql.NullString `bun:"comment"`
}

// --- Mapping helpers (centralized conversions) ---
func remoteModelToModel(r RemoteModel) model.Remote {
	return model.Remote{ID: r.ID, Name: r.Name, Comment: r.Comment.String}
}

func keyModelToModel(k KeyModel) model.Key {
	return model.Key{
		ID:       k.ID,
		RemoteID: k.RemoteID,
		Protocol: k.Protocol,
		Address:  k.Address,
		Command:  k.Command,
		KeyName:  k.KeyName,
		Comment:  k.Comment.String,
	}
}

// CreateRemote inserts a new remote and returns its id. A name that already
// exists yields ErrDuplicateName and leaves the table unchanged.
func (s *Store) CreateRemote(ctx context.Context, name, comment string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}
	rm := &RemoteModel{Name: name, Comment: nullString(comment)}
	err := s.withDB(ctx, func(ctx context.Context, bdb *bun.DB) error {
		_, err := bdb.NewInsert().Model(rm).Column("name", "comment").Returning("id").Exec(ctx)
		return MapDBError(err)
	})
	if errors.Is(err, ErrDuplicate) {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if err != nil {
		return 0, err
	}
	dbLogf("db: created remote %q with id %d", name, rm.ID)
	return rm.ID, nil
}

// ListRemotes returns all remotes ordered by name.
func (s *Store) ListRemotes(ctx context.Context) ([]model.Remote, error) {
	var rows []RemoteModel
	err := s.withDB(ctx, func(ctx context.Context, bdb *bun.DB) error {
		return bdb.NewSelect().Model(&rows).Order("name ASC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Remote, 0, len(rows))
	for _, r := range rows {
		out = append(out, remoteModelToModel(r))
	}
	return out, nil
}

// GetRemote returns the remote with the given id, or nil when none exists.
func (s *Store) GetRemote(ctx context.Context, id int64) (*model.Remote, error) {
	var rm RemoteModel
	err := s.withDB(ctx, func(ctx context.Context, bdb *bun.DB) error {
		return bdb.NewSelect().Model(&rm).Where("id = ?", id).Limit(1).Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r := remoteModelToModel(rm)
	return &r, nil
}

// UpsertKey stores key under (RemoteID, KeyName). An existing row for that
// pair is updated in place: it keeps its id and every other column is
// overwritten. Otherwise a new row is inserted. key.ID is ignored.
func (s *Store) UpsertKey(ctx context.Context, key model.Key) error {
	if strings.TrimSpace(key.KeyName) == "" {
		return ErrEmptyKeyName
	}
	km := &KeyModel{
		RemoteID: key.RemoteID,
		Protocol: key.Protocol,
		Address:  key.Address,
		Command:  key.Command,
		KeyName:  key.KeyName,
		Comment:  nullString(key.Comment),
	}
	return s.withDB(ctx, func(ctx context.Context, bdb *bun.DB) error {
		return bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			ok, err := tx.NewSelect().Model((*RemoteModel)(nil)).Where("id = ?", key.RemoteID).Exists(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %d", ErrUnknownRemote, key.RemoteID)
			}

			var existing KeyModel
			err = tx.NewSelect().Model(&existing).
				Where("remote_id = ?", key.RemoteID).
				Where("key_name = ?", key.KeyName).
				Limit(1).
				Scan(ctx)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := tx.NewInsert().Model(km).
					Column("remote_id", "protocol", "address", "command", "key_name", "comment").
					Returning("id").
					Exec(ctx); err != nil {
					return MapDBError(err)
				}
				dbLogf("db: inserted key %q for remote %d", key.KeyName, key.RemoteID)
			case err != nil:
				return err
			default:
				km.ID = existing.ID
				if _, err := tx.NewUpdate().Model(km).
					Column("protocol", "address", "command", "comment").
					WherePK().
					Exec(ctx); err != nil {
					return err
				}
				dbLogf("db: replaced key %q (id %d) for remote %d", key.KeyName, km.ID, key.RemoteID)
			}
			return nil
		})
	})
}

// ListKeysForRemote returns the keys of one remote ordered by key name.
func (s *Store) ListKeysForRemote(ctx context.Context, remoteID int64) ([]model.Key, error) {
	var rows []KeyModel
	err := s.withDB(ctx, func(ctx context.Context, bdb *bun.DB) error {
		return bdb.NewSelect().Model(&rows).Where("remote_id = ?", remoteID).Order("key_name ASC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.Key, 0, len(rows))
	for _, k := range rows {
		out = append(out, keyModelToModel(k))
	}
	return out, nil
}
