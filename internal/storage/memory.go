package storage

import (
	"context"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
)

// MemoryStore keeps summaries in process memory. Used for development and
// tests; documents do not survive a restart.
type MemoryStore struct {
	summaries *abstract.SafeMap[string, *model.Summary]
}

// NewMemoryStore creates a new in-memory summary store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		summaries: abstract.NewSafeMap[string, *model.Summary](),
	}
}

// Save stores the summary under a fresh identifier
func (s *MemoryStore) Save(ctx context.Context, summary *model.Summary) (string, error) {
	if summary == nil {
		return "", errm.New("summary is nil")
	}
	id, err := newID()
	if err != nil {
		return "", err
	}
	s.summaries.Set(id, summary)
	return id, nil
}

// Load returns the summary for the identifier or ErrNotFound
func (s *MemoryStore) Load(ctx context.Context, id string) (*model.Summary, error) {
	summary, ok := s.summaries.Lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return summary, nil
}
