// Package recap implements the aggregation pipeline: it folds raw commit,
// pull request and work item collections into one denormalized summary
// document with rankings, streaks, activity patterns, highlights and
// milestones. Everything here is a deterministic, side-effect-free
// transform over an already-fetched snapshot.
package recap

import (
	"context"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/devrecap/internal/provider"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
)

// Service orchestrates one recap run: fetch snapshot, build document, save
type Service struct {
	fetcher *provider.Fetcher
	store   model.SummaryStore
	cfg     Config
	log     logze.Logger
}

// New creates a new recap service
func New(cfg Config, fetcher *provider.Fetcher, store model.SummaryStore) (*Service, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		log:     logze.With("component", "recap"),
	}, nil
}

// Generate fetches the activity snapshot for the period, builds the summary
// document and persists it. Fetching is best-effort: partial upstream
// failures degrade to partial aggregates instead of failing the run.
func (s *Service) Generate(ctx context.Context, projectID string, from, to *time.Time) (string, *model.Summary, error) {
	timer := abstract.StartTimer()

	snapshot := s.fetcher.FetchSnapshot(ctx, projectID, from, to)

	summary := Build(Input{
		ProjectName:   projectID,
		Version:       s.cfg.Version,
		From:          from,
		To:            to,
		Snapshot:      snapshot,
		MaxHighlights: s.cfg.MaxHighlights,
		MaxFunFacts:   s.cfg.MaxFunFacts,
	})

	id, err := s.store.Save(ctx, summary)
	if err != nil {
		return "", nil, errm.Wrap(err, "failed to save summary")
	}

	s.log.Info("recap generated",
		"project", projectID,
		"id", id,
		"commits", summary.Stats.TotalCommits,
		"contributors", summary.Stats.ActiveContributors,
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return id, summary, nil
}

// Get loads a previously generated summary by identifier
func (s *Service) Get(ctx context.Context, id string) (*model.Summary, error) {
	summary, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, errm.Wrap(err, "failed to load summary")
	}
	return summary, nil
}

// Import persists a caller-supplied document that bypassed aggregation.
// Schema validation happens at the HTTP boundary before this point.
func (s *Service) Import(ctx context.Context, summary *model.Summary) (string, error) {
	id, err := s.store.Save(ctx, summary)
	if err != nil {
		return "", errm.Wrap(err, "failed to save imported summary")
	}
	s.log.Info("summary imported", "project", summary.ProjectName, "id", id)
	return id, nil
}
