package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/acervolab/catalogagent/record"
)

// PostgresStore persists records in a postgres table. The caller owns the
// *sql.DB (driver registration, pooling, lifetime).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the records table when it does not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			id            TEXT PRIMARY KEY,
			template_id   TEXT NOT NULL,
			template_name TEXT NOT NULL DEFAULT '',
			fields        JSONB NOT NULL,
			unimarc       TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (p *PostgresStore) SaveRecord(ctx context.Context, rec *record.Record) (string, error) {
	fieldsJSON, err := sonic.Marshal(rec.Fields)
	if err != nil {
		return "", fmt.Errorf("marshal record fields: %w", err)
	}

	id := uuid.NewString()
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO records (id, template_id, template_name, fields, unimarc)
		VALUES ($1, $2, $3, $4, $5)
	`,
		id,
		rec.TemplateID,
		rec.TemplateName,
		fieldsJSON,
		rec.Unimarc,
	)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}
