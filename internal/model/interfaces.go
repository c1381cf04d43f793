package model

import (
	"context"
	"time"
)

// SourceProvider defines the interface for different activity sources
// (Azure DevOps, GitHub, GitLab). All methods return already-normalized
// records; the aggregation core never sees provider payloads.
type SourceProvider interface {
	// Name returns the provider type name
	Name() string

	// ListRepositories returns the repository names of a project
	ListRepositories(ctx context.Context, projectID string) ([]string, error)

	// GetCommits returns the commits of one repository within the range
	GetCommits(ctx context.Context, projectID, repo string, from, to time.Time) ([]*Commit, error)

	// ListPullRequests returns the pull requests of a project within the range
	ListPullRequests(ctx context.Context, projectID string, from, to time.Time) ([]*PullRequest, error)

	// CountPullRequestComments returns review comment counts per author
	// display name for a single pull request
	CountPullRequestComments(ctx context.Context, projectID string, pr *PullRequest) (map[string]int, error)

	// ListWorkItems returns the work items of a project within the range
	ListWorkItems(ctx context.Context, projectID string, from, to time.Time) ([]*WorkItem, error)
}

// SummaryStore persists recap documents by generated identifier
type SummaryStore interface {
	Save(ctx context.Context, summary *Summary) (string, error)
	Load(ctx context.Context, id string) (*Summary, error)
}
