// Package storage persists recap documents by generated identifier.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"slices"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
)

// ErrNotFound is returned when no summary exists for an identifier
var ErrNotFound = errors.New("summary not found")

type StorageType string

// Supported storage backends
const (
	Memory   StorageType = "memory"
	Postgres StorageType = "postgres"
)

var supportedStorageTypes = []StorageType{Memory, Postgres}

// Config represents summary storage configuration
type Config struct {
	Type StorageType `yaml:"type" env:"STORAGE_TYPE"`
	DSN  string      `yaml:"dsn" env:"STORAGE_DSN"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Type == "" {
		c.Type = Memory
	}
	if !slices.Contains(supportedStorageTypes, c.Type) {
		return errm.New("invalid storage type: %s", c.Type)
	}
	if c.Type == Postgres && c.DSN == "" {
		return errm.New("dsn is required for postgres storage")
	}
	return nil
}

// New creates a summary store based on the configuration
func New(cfg Config) (model.SummaryStore, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	switch cfg.Type {
	case Postgres:
		store, err := NewPostgresStore(cfg.DSN)
		if err != nil {
			return nil, erro.Wrap(err, "failed to create postgres store")
		}
		return store, nil
	default:
		return NewMemoryStore(), nil
	}
}

// newID returns a random 16-character hex identifier
func newID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", errm.Wrap(err, "failed to generate id")
	}
	return hex.EncodeToString(buf), nil
}
