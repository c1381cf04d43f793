package gitlab

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const defaultBaseURL = "https://gitlab.com"

const pageSize = 100

var _ model.SourceProvider = (*Provider)(nil)

// Provider implements the SourceProvider interface for GitLab.
// A "project" is a single GitLab project (a project is its own repository);
// issues stand in for work items, with issue weight as story points.
type Provider struct {
	client *gitlab.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitLab provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	logger := logze.With("provider", "gitlab")

	baseURL := lang.Check(config.BaseURL, defaultBaseURL)

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Name returns the provider type name
func (p *Provider) Name() string {
	return "gitlab"
}

// ListRepositories returns the project itself: a GitLab project is its own
// repository.
func (p *Provider) ListRepositories(ctx context.Context, projectID string) ([]string, error) {
	return []string{projectID}, nil
}

// GetCommits returns the commits of the project within the range
func (p *Provider) GetCommits(ctx context.Context, projectID, repo string, from, to time.Time) ([]*model.Commit, error) {
	opts := &gitlab.ListCommitsOptions{
		WithStats:   gitlab.Ptr(true),
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
	}
	if !from.IsZero() {
		opts.Since = gitlab.Ptr(from)
	}
	if !to.IsZero() {
		opts.Until = gitlab.Ptr(to)
	}

	var result []*model.Commit
	for {
		commits, resp, err := p.client.Commits.ListCommits(repo, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch commits")
		}

		for _, commit := range commits {
			converted := &model.Commit{
				SHA:       commit.ID,
				Author:    commit.AuthorName,
				Email:     commit.AuthorEmail,
				Message:   commit.Message,
				Timestamp: lang.Deref(commit.CreatedAt),
			}
			if commit.Stats != nil {
				converted.Stats = model.CommitStats{
					Additions: commit.Stats.Additions,
					Deletions: commit.Stats.Deletions,
				}
			}
			result = append(result, converted)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// ListPullRequests returns the merge requests of the project within the range
func (p *Provider) ListPullRequests(ctx context.Context, projectID string, from, to time.Time) ([]*model.PullRequest, error) {
	opts := &gitlab.ListProjectMergeRequestsOptions{
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
	}
	if !from.IsZero() {
		opts.CreatedAfter = gitlab.Ptr(from)
	}
	if !to.IsZero() {
		opts.CreatedBefore = gitlab.Ptr(to)
	}

	var result []*model.PullRequest
	for {
		mrs, resp, err := p.client.MergeRequests.ListProjectMergeRequests(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list merge requests")
		}

		for _, mr := range mrs {
			reviewers := make([]model.Reviewer, 0, len(mr.Reviewers))
			for _, reviewer := range mr.Reviewers {
				reviewers = append(reviewers, model.Reviewer{
					Name: reviewer.Name,
					Vote: model.VoteNone,
				})
			}

			converted := &model.PullRequest{
				ID:         mr.IID,
				Title:      mr.Title,
				Status:     convertState(mr.State),
				Author:     mr.Author.Name,
				Repository: projectID,
				CreatedAt:  lang.Deref(mr.CreatedAt),
				Reviewers:  reviewers,
			}
			if mr.MergedAt != nil {
				converted.ClosedAt = mr.MergedAt
			} else if mr.ClosedAt != nil {
				converted.ClosedAt = mr.ClosedAt
			}
			result = append(result, converted)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// CountPullRequestComments counts non-system notes on the MR per author
func (p *Provider) CountPullRequestComments(ctx context.Context, projectID string, pr *model.PullRequest) (map[string]int, error) {
	opts := &gitlab.ListMergeRequestNotesOptions{
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
	}

	counts := make(map[string]int)
	for {
		notes, resp, err := p.client.Notes.ListMergeRequestNotes(projectID, pr.ID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch merge request notes")
		}
		for _, note := range notes {
			if note.System {
				continue
			}
			counts[note.Author.Name]++
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return counts, nil
}

// ListWorkItems maps project issues onto work items: a "bug" label makes
// the item a Bug, closed issues count as Done, issue weight becomes story
// points. GitLab has no area paths, the module fallback applies.
func (p *Provider) ListWorkItems(ctx context.Context, projectID string, from, to time.Time) ([]*model.WorkItem, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
	}
	if !from.IsZero() {
		opts.CreatedAfter = gitlab.Ptr(from)
	}
	if !to.IsZero() {
		opts.CreatedBefore = gitlab.Ptr(to)
	}

	var result []*model.WorkItem
	for {
		issues, resp, err := p.client.Issues.ListProjectIssues(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list issues")
		}

		for _, issue := range issues {
			item := &model.WorkItem{
				ID:          issue.IID,
				Title:       issue.Title,
				Type:        issueType(issue.Labels),
				State:       issueState(issue.State),
				StoryPoints: float64(issue.Weight),
				CreatedAt:   lang.Deref(issue.CreatedAt),
			}
			if issue.Assignee != nil {
				item.Assignee = issue.Assignee.Name
			}
			result = append(result, item)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

func convertState(state string) model.PRStatus {
	switch state {
	case "merged":
		return model.PRStatusCompleted
	case "closed":
		return model.PRStatusAbandoned
	default:
		return model.PRStatusActive
	}
}

func issueType(labels gitlab.Labels) string {
	for _, label := range labels {
		if strings.EqualFold(label, "bug") {
			return "Bug"
		}
	}
	return "Feature"
}

func issueState(state string) string {
	if state == "closed" {
		return "Done"
	}
	return "Active"
}
