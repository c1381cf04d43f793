// Package app wires the application components together.
package app

import (
	"context"
	"io"
	"time"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/devrecap/internal/config"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/devrecap/internal/provider"
	"github.com/maxbolgarin/devrecap/internal/recap"
	"github.com/maxbolgarin/devrecap/internal/server"
	"github.com/maxbolgarin/devrecap/internal/storage"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// DevRecap is the main service that orchestrates all components
type DevRecap struct {
	provider model.SourceProvider
	fetcher  *provider.Fetcher
	store    model.SummaryStore
	service  *recap.Service
	server   *server.Server

	cfg config.Config
	log logze.Logger
}

// New creates a new recap service
func New(ctx contem.Context, cfg config.Config) (*DevRecap, error) {
	service := &DevRecap{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

// StartServer starts the recap API server
func (s *DevRecap) StartServer(ctx context.Context) error {
	if err := s.server.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start server")
	}
	return nil
}

// Generate runs one recap for the project and period and returns the
// stored document identifier.
func (s *DevRecap) Generate(ctx context.Context, projectID string, from, to *time.Time) (string, error) {
	id, _, err := s.service.Generate(ctx, projectID, from, to)
	if err != nil {
		return "", errm.Wrap(err, "failed to generate recap")
	}
	return id, nil
}

func (s *DevRecap) init(ctx contem.Context, cfg config.Config) (err error) {

	// Create activity source provider
	s.provider, err = provider.NewProvider(cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create activity provider")
	}

	s.fetcher, err = provider.NewFetcher(s.provider)
	if err != nil {
		return errm.Wrap(err, "failed to create fetcher")
	}
	ctx.Add(func(context.Context) error {
		s.fetcher.Close()
		return nil
	})

	// Create summary storage
	s.store, err = storage.New(cfg.Storage)
	if err != nil {
		return errm.Wrap(err, "failed to create storage")
	}
	if closer, ok := s.store.(io.Closer); ok {
		ctx.Add(func(context.Context) error {
			return closer.Close()
		})
	}

	// Create recap service - this is the central orchestrator
	s.service, err = recap.New(cfg.Recap, s.fetcher, s.store)
	if err != nil {
		return errm.Wrap(err, "failed to create recap service")
	}

	// Create API server
	s.server, err = server.New(cfg.Server, s.service)
	if err != nil {
		return errm.Wrap(err, "failed to create server")
	}
	ctx.Add(s.server.Stop)

	return nil
}
