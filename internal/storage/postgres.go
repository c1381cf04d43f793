package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/lib/pq"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS summaries (
		id         TEXT PRIMARY KEY,
		project    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		document   JSONB NOT NULL
	)`

// PostgresStore persists summaries as JSON documents in Postgres
type PostgresStore struct {
	db  *sqlx.DB
	log logze.Logger
}

// NewPostgresStore connects to Postgres and ensures the summaries table
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errm.Wrap(err, "failed to connect to postgres")
	}

	if _, err := db.Exec(createTableQuery); err != nil {
		return nil, errm.Wrap(err, "failed to create summaries table")
	}

	return &PostgresStore{
		db:  db,
		log: logze.With("component", "storage"),
	}, nil
}

// Save stores the summary under a fresh identifier
func (s *PostgresStore) Save(ctx context.Context, summary *model.Summary) (string, error) {
	if summary == nil {
		return "", errm.New("summary is nil")
	}

	id, err := newID()
	if err != nil {
		return "", err
	}

	document, err := json.Marshal(summary)
	if err != nil {
		return "", errm.Wrap(err, "failed to marshal summary")
	}

	query := `INSERT INTO summaries (id, project, created_at, document) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, query, id, summary.ProjectName, time.Now().UTC(), document); err != nil {
		return "", errm.Wrap(err, "failed to insert summary")
	}

	s.log.Debug("summary saved", "id", id, "project", summary.ProjectName)
	return id, nil
}

// Load returns the summary for the identifier or ErrNotFound
func (s *PostgresStore) Load(ctx context.Context, id string) (*model.Summary, error) {
	var document []byte
	query := `SELECT document FROM summaries WHERE id = $1`
	if err := s.db.GetContext(ctx, &document, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errm.Wrap(err, "failed to select summary")
	}

	var summary model.Summary
	if err := json.Unmarshal(document, &summary); err != nil {
		return nil, errm.Wrap(err, "failed to unmarshal summary")
	}
	return &summary, nil
}

// Close closes the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
