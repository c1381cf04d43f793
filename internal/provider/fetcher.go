package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/panjf2000/ants/v2"
)

const fetchPoolSize = 20

// Fetcher assembles one activity snapshot from a provider. Sub-fetches
// (per-repository commits, per-PR comment counts) run concurrently and are
// best-effort: a failed sub-fetch logs and degrades to empty results, it
// never aborts the snapshot.
type Fetcher struct {
	provider model.SourceProvider
	pool     *ants.Pool
	log      logze.Logger
}

// NewFetcher creates a new snapshot fetcher
func NewFetcher(provider model.SourceProvider) (*Fetcher, error) {
	pool, err := ants.NewPool(fetchPoolSize)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create ants pool")
	}
	return &Fetcher{
		provider: provider,
		pool:     pool,
		log:      logze.With("component", "fetcher"),
	}, nil
}

// Close releases the worker pool
func (f *Fetcher) Close() {
	f.pool.Release()
}

// FetchSnapshot collects commits across all repositories, pull requests,
// per-author review comment counts and work items for the period. The
// returned snapshot is complete-enough: missing pieces are empty, never nil.
func (f *Fetcher) FetchSnapshot(ctx context.Context, projectID string, from, to *time.Time) *model.Snapshot {
	snapshot := &model.Snapshot{
		CommentCounts: make(map[string]int),
	}
	fromTime, toTime := lang.Deref(from), lang.Deref(to)

	var mu sync.Mutex
	var wg sync.WaitGroup

	repos, err := f.provider.ListRepositories(ctx, projectID)
	if err != nil {
		f.log.Error("failed to list repositories", "project", projectID, "error", err)
	}

	for _, repo := range repos {
		f.submit(&wg, func() {
			commits, err := f.provider.GetCommits(ctx, projectID, repo, fromTime, toTime)
			if err != nil {
				f.log.Error("failed to fetch commits", "project", projectID, "repo", repo, "error", err)
				return
			}
			mu.Lock()
			snapshot.Commits = append(snapshot.Commits, commits...)
			mu.Unlock()
		})
	}

	prs, err := f.provider.ListPullRequests(ctx, projectID, fromTime, toTime)
	if err != nil {
		f.log.Error("failed to list pull requests", "project", projectID, "error", err)
	}
	snapshot.PullRequests = prs

	for _, pr := range prs {
		f.submit(&wg, func() {
			counts, err := f.provider.CountPullRequestComments(ctx, projectID, pr)
			if err != nil {
				f.log.Warn("failed to count pull request comments", "project", projectID, "pr", pr.ID, "error", err)
				return
			}
			mu.Lock()
			for author, count := range counts {
				snapshot.CommentCounts[author] += count
			}
			mu.Unlock()
		})
	}

	items, err := f.provider.ListWorkItems(ctx, projectID, fromTime, toTime)
	if err != nil {
		f.log.Error("failed to list work items", "project", projectID, "error", err)
	}
	snapshot.WorkItems = items

	wg.Wait()

	// Concurrent per-repo appends shuffle commit order, pin it back for
	// deterministic output.
	sort.SliceStable(snapshot.Commits, func(i, j int) bool {
		a, b := snapshot.Commits[i], snapshot.Commits[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.SHA < b.SHA
	})

	f.log.Debug("snapshot fetched",
		"project", projectID,
		"repos", len(repos),
		"commits", len(snapshot.Commits),
		"pull_requests", len(snapshot.PullRequests),
		"work_items", len(snapshot.WorkItems),
	)

	return snapshot
}

func (f *Fetcher) submit(wg *sync.WaitGroup, task func()) {
	wg.Add(1)
	if err := f.pool.Submit(func() {
		defer wg.Done()
		task()
	}); err != nil {
		wg.Done()
		f.log.Error("failed to submit fetch task", "error", err)
	}
}
