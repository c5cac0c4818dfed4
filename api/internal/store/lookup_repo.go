// Package store keeps an audit trail of landmark lookups in Postgres. It is
// never read back to answer a lookup.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lookup is one successful landmark identification.
type Lookup struct {
	ID          uuid.UUID
	ChatID      int64
	ImageHash   string
	Engine      string
	Model       string
	Language    string
	Name        string
	SourceCount int
	CreatedAt   time.Time
}

type LookupRepo struct {
	DB *sql.DB

	now   func() time.Time
	newID func() uuid.UUID
}

func NewLookupRepo(db *sql.DB) *LookupRepo {
	return &LookupRepo{DB: db, now: time.Now, newID: uuid.New}
}

const schema = `
create table if not exists landmark_lookups (
  id           uuid primary key,
  chat_id      bigint not null,
  image_hash   text not null,
  engine       text not null,
  model        text not null,
  language     text not null,
  name         text not null,
  source_count integer not null default 0,
  created_at   timestamptz not null default now()
);
create index if not exists landmark_lookups_chat_created
  on landmark_lookups (chat_id, created_at desc)`

func (r *LookupRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// Record stores l, filling ID and CreatedAt when they are zero.
func (r *LookupRepo) Record(ctx context.Context, l *Lookup) error {
	if l == nil {
		return errors.New("store: nil lookup")
	}
	if l.ID == uuid.Nil {
		l.ID = r.newID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.now().UTC()
	}
	const q = `
insert into landmark_lookups (
  id, chat_id, image_hash, engine, model, language, name, source_count, created_at
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.DB.ExecContext(ctx, q,
		l.ID, l.ChatID, l.ImageHash, l.Engine, l.Model, l.Language, l.Name, l.SourceCount, l.CreatedAt)
	return err
}

// Recent returns up to limit lookups of a chat, newest first.
func (r *LookupRepo) Recent(ctx context.Context, chatID int64, limit int) ([]Lookup, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
select id, chat_id, image_hash, engine, model, language, name, source_count, created_at
from landmark_lookups
where chat_id = $1
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.ChatID, &l.ImageHash, &l.Engine, &l.Model,
			&l.Language, &l.Name, &l.SourceCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes lookups older than age and reports how many went.
func (r *LookupRepo) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	const q = `delete from landmark_lookups where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, r.now().Add(-age).UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
