package provider

import (
	"context"
	"testing"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider serves canned per-repository data for fetcher tests
type stubProvider struct {
	repos      []string
	commits    map[string][]*model.Commit
	prs        []*model.PullRequest
	items      []*model.WorkItem
	reposErr   error
	commitsErr error
	prsErr     error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) ListRepositories(ctx context.Context, projectID string) ([]string, error) {
	return s.repos, s.reposErr
}

func (s *stubProvider) GetCommits(ctx context.Context, projectID, repo string, from, to time.Time) ([]*model.Commit, error) {
	if s.commitsErr != nil {
		return nil, s.commitsErr
	}
	return s.commits[repo], nil
}

func (s *stubProvider) ListPullRequests(ctx context.Context, projectID string, from, to time.Time) ([]*model.PullRequest, error) {
	return s.prs, s.prsErr
}

func (s *stubProvider) CountPullRequestComments(ctx context.Context, projectID string, pr *model.PullRequest) (map[string]int, error) {
	return map[string]int{pr.Author: pr.ID}, nil
}

func (s *stubProvider) ListWorkItems(ctx context.Context, projectID string, from, to time.Time) ([]*model.WorkItem, error) {
	return s.items, nil
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestFetchSnapshot(t *testing.T) {
	stub := &stubProvider{
		repos: []string{"backend", "frontend"},
		commits: map[string][]*model.Commit{
			"backend": {
				{SHA: "b2", Author: "Bob", Timestamp: day(3)},
				{SHA: "b1", Author: "Alice", Timestamp: day(1)},
			},
			"frontend": {
				{SHA: "f1", Author: "Alice", Timestamp: day(2)},
			},
		},
		prs: []*model.PullRequest{
			{ID: 3, Author: "Alice", Status: model.PRStatusCompleted},
			{ID: 4, Author: "Bob", Status: model.PRStatusActive},
		},
		items: []*model.WorkItem{
			{ID: 10, Type: "Bug", State: "Done"},
		},
	}

	fetcher, err := NewFetcher(stub)
	require.NoError(t, err)
	defer fetcher.Close()

	snapshot := fetcher.FetchSnapshot(context.Background(), "payments", nil, nil)

	t.Run("merges commits across repositories", func(t *testing.T) {
		require.Len(t, snapshot.Commits, 3)
	})

	t.Run("commits are ordered by timestamp", func(t *testing.T) {
		assert.Equal(t, "b1", snapshot.Commits[0].SHA)
		assert.Equal(t, "f1", snapshot.Commits[1].SHA)
		assert.Equal(t, "b2", snapshot.Commits[2].SHA)
	})

	t.Run("comment counts accumulate per author", func(t *testing.T) {
		assert.Equal(t, map[string]int{"Alice": 3, "Bob": 4}, snapshot.CommentCounts)
	})

	t.Run("pull requests and work items pass through", func(t *testing.T) {
		assert.Len(t, snapshot.PullRequests, 2)
		assert.Len(t, snapshot.WorkItems, 1)
	})
}

func TestFetchSnapshotDegradesOnErrors(t *testing.T) {
	stub := &stubProvider{
		repos:    []string{"backend"},
		reposErr: errm.New("upstream down"),
		prsErr:   errm.New("upstream down"),
	}

	fetcher, err := NewFetcher(stub)
	require.NoError(t, err)
	defer fetcher.Close()

	snapshot := fetcher.FetchSnapshot(context.Background(), "payments", nil, nil)

	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.PullRequests)
	assert.NotNil(t, snapshot.CommentCounts)
}

func TestFetchSnapshotCommitErrorSkipsRepo(t *testing.T) {
	stub := &stubProvider{
		repos:      []string{"backend"},
		commitsErr: errm.New("boom"),
	}

	fetcher, err := NewFetcher(stub)
	require.NoError(t, err)
	defer fetcher.Close()

	snapshot := fetcher.FetchSnapshot(context.Background(), "payments", nil, nil)
	assert.Empty(t, snapshot.Commits)
}
