package github

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

var _ model.SourceProvider = (*Provider)(nil)

const defaultBaseURL = "https://github.com"

const pageSize = 100

// Provider implements the SourceProvider interface for GitHub.
// A "project" is a GitHub organization; commits and pull requests are
// collected per repository, labeled issues stand in for work items.
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("provider", "github")

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" && config.BaseURL != defaultBaseURL {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// Name returns the provider type name
func (p *Provider) Name() string {
	return "github"
}

// ListRepositories returns the repository names of an organization
func (p *Provider) ListRepositories(ctx context.Context, projectID string) ([]string, error) {
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var repos []string
	for {
		page, resp, err := p.client.Repositories.ListByOrg(ctx, projectID, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list repositories")
		}
		for _, repo := range page {
			repos = append(repos, repo.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

// GetCommits returns the commits of one repository within the range
func (p *Provider) GetCommits(ctx context.Context, projectID, repo string, from, to time.Time) ([]*model.Commit, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	if !from.IsZero() {
		opts.Since = from
	}
	if !to.IsZero() {
		opts.Until = to
	}

	var result []*model.Commit
	for {
		commits, resp, err := p.client.Repositories.ListCommits(ctx, projectID, repo, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch commits")
		}

		for _, commit := range commits {
			author := commit.GetCommit().GetAuthor()
			result = append(result, &model.Commit{
				SHA:       commit.GetSHA(),
				Author:    author.GetName(),
				Email:     author.GetEmail(),
				Message:   commit.GetCommit().GetMessage(),
				Timestamp: author.GetDate().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// ListPullRequests returns pull requests across all repositories of the
// organization. A failed repository listing degrades to a partial result.
func (p *Provider) ListPullRequests(ctx context.Context, projectID string, from, to time.Time) ([]*model.PullRequest, error) {
	repos, err := p.ListRepositories(ctx, projectID)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list repositories for pull requests")
	}

	var result []*model.PullRequest
	for _, repo := range repos {
		prs, err := p.listRepoPullRequests(ctx, projectID, repo, from, to)
		if err != nil {
			p.logger.Error("failed to list pull requests", "repo", repo, "error", err)
			continue
		}
		result = append(result, prs...)
	}
	return result, nil
}

func (p *Provider) listRepoPullRequests(ctx context.Context, owner, repo string, from, to time.Time) ([]*model.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var result []*model.PullRequest
	for {
		prs, resp, err := p.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch pull requests")
		}

		done := false
		for _, pr := range prs {
			createdAt := pr.GetCreatedAt().Time
			if !from.IsZero() && createdAt.Before(from) {
				done = true // sorted by creation desc, everything below is older
				break
			}
			if !to.IsZero() && createdAt.After(to) {
				continue
			}

			reviewers, err := p.listReviewers(ctx, owner, repo, pr.GetNumber())
			if err != nil {
				p.logger.Warn("failed to fetch pull request reviews", "repo", repo, "pr", pr.GetNumber(), "error", err)
			}

			converted := &model.PullRequest{
				ID:         pr.GetNumber(),
				Title:      pr.GetTitle(),
				Status:     convertState(pr),
				Author:     reviewerName(pr.GetUser()),
				Repository: repo,
				CreatedAt:  createdAt,
				Reviewers:  reviewers,
			}
			if closedAt := pr.GetClosedAt(); !closedAt.IsZero() {
				t := closedAt.Time
				converted.ClosedAt = &t
			}
			result = append(result, converted)
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// listReviewers fetches the submitted reviews of a pull request and folds
// them into reviewer entries. A review request alone is not a review, so
// requested-but-silent reviewers do not appear here.
func (p *Provider) listReviewers(ctx context.Context, owner, repo string, number int) ([]model.Reviewer, error) {
	opts := &github.ListOptions{PerPage: pageSize}

	var reviews []*github.PullRequestReview
	for {
		page, resp, err := p.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch pull request reviews")
		}
		reviews = append(reviews, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return convertReviews(reviews), nil
}

// convertReviews deduplicates reviews by reviewer, one entry per person.
// Reviews arrive in chronological order, so a later verdict overrides an
// earlier one; a plain comment never resets a standing verdict.
func convertReviews(reviews []*github.PullRequestReview) []model.Reviewer {
	var result []model.Reviewer
	index := make(map[string]int)

	for _, review := range reviews {
		if review.GetState() == "PENDING" {
			continue // unsubmitted draft
		}
		name := reviewerName(review.GetUser())
		if name == "" {
			continue
		}
		vote := reviewVote(review.GetState())
		if i, ok := index[name]; ok {
			if vote != model.VoteNone {
				result[i].Vote = vote
			}
			continue
		}
		index[name] = len(result)
		result = append(result, model.Reviewer{Name: name, Vote: vote})
	}
	return result
}

// reviewVote maps a GitHub review state onto the vote scale
func reviewVote(state string) int {
	switch state {
	case "APPROVED":
		return model.VoteApproved
	case "CHANGES_REQUESTED":
		return model.VoteRejected
	default:
		return model.VoteNone
	}
}

// CountPullRequestComments counts issue comments on the PR per author
func (p *Provider) CountPullRequestComments(ctx context.Context, projectID string, pr *model.PullRequest) (map[string]int, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	counts := make(map[string]int)
	for {
		comments, resp, err := p.client.Issues.ListComments(ctx, projectID, pr.Repository, pr.ID, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch pull request comments")
		}
		for _, comment := range comments {
			counts[reviewerName(comment.GetUser())]++
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return counts, nil
}

// ListWorkItems maps labeled issues onto work items: a "bug" label makes
// the item a Bug, closed issues count as Done. GitHub has no story points
// or area paths, those stay zero-valued.
func (p *Provider) ListWorkItems(ctx context.Context, projectID string, from, to time.Time) ([]*model.WorkItem, error) {
	repos, err := p.ListRepositories(ctx, projectID)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list repositories for issues")
	}

	var result []*model.WorkItem
	for _, repo := range repos {
		items, err := p.listRepoIssues(ctx, projectID, repo, from, to)
		if err != nil {
			p.logger.Error("failed to list issues", "repo", repo, "error", err)
			continue
		}
		result = append(result, items...)
	}
	return result, nil
}

func (p *Provider) listRepoIssues(ctx context.Context, owner, repo string, from, to time.Time) ([]*model.WorkItem, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	if !from.IsZero() {
		opts.Since = from
	}

	var result []*model.WorkItem
	for {
		issues, resp, err := p.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to fetch issues")
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			createdAt := issue.GetCreatedAt().Time
			if !to.IsZero() && createdAt.After(to) {
				continue
			}

			item := &model.WorkItem{
				ID:        issue.GetNumber(),
				Title:     issue.GetTitle(),
				Type:      issueType(issue),
				State:     issueState(issue),
				CreatedAt: createdAt,
			}
			if assignee := issue.GetAssignee(); assignee != nil {
				item.Assignee = reviewerName(assignee)
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

// reviewerName prefers the profile name and falls back to the login
func reviewerName(user *github.User) string {
	if user == nil {
		return ""
	}
	if name := user.GetName(); name != "" {
		return name
	}
	return user.GetLogin()
}

func convertState(pr *github.PullRequest) model.PRStatus {
	switch {
	case pr.MergedAt != nil:
		return model.PRStatusCompleted
	case pr.GetState() == "closed":
		return model.PRStatusAbandoned
	default:
		return model.PRStatusActive
	}
}

func issueType(issue *github.Issue) string {
	for _, label := range issue.Labels {
		if strings.EqualFold(label.GetName(), "bug") {
			return "Bug"
		}
	}
	return "Feature"
}

func issueState(issue *github.Issue) string {
	if issue.GetState() == "closed" {
		return "Done"
	}
	return "Active"
}
