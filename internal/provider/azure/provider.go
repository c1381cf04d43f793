package azure

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var _ model.SourceProvider = (*Provider)(nil)

const (
	defaultBaseURL = "https://dev.azure.com"
	apiVersion     = "7.1"

	commitPageSize   = 500
	prPageSize       = 100
	workItemPageSize = 200
)

// Provider implements the SourceProvider interface for Azure DevOps
type Provider struct {
	config model.ProviderConfig
	logger logze.Logger
	client *cliex.HTTP
}

// New creates a new Azure DevOps provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("Azure DevOps token is required")
	}
	if config.Organization == "" {
		return nil, errm.New("Azure DevOps organization is required")
	}
	log := logze.With("provider", "azure")

	baseURL := lang.Check(strings.TrimSuffix(config.BaseURL, "/"), defaultBaseURL)

	cli, err := cliex.New(cliex.WithBaseURL(baseURL+"/"+config.Organization), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Azure DevOps client")
	}
	// PAT auth: empty user, token as password
	cli.C().SetBasicAuth("", config.Token)

	return &Provider{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

// Name returns the provider type name
func (p *Provider) Name() string {
	return "azure"
}

// ListRepositories returns the git repository names of a project
func (p *Provider) ListRepositories(ctx context.Context, projectID string) ([]string, error) {
	apiURL := fmt.Sprintf("%s/_apis/git/repositories?api-version=%s", url.PathEscape(projectID), apiVersion)

	var response azureListResponse[azureRepository]
	if _, err := p.client.Get(ctx, apiURL, &response); err != nil {
		return nil, errm.Wrap(err, "failed to list repositories")
	}

	repos := make([]string, 0, len(response.Value))
	for _, repo := range response.Value {
		repos = append(repos, repo.Name)
	}
	return repos, nil
}

// GetCommits returns the commits of one repository within the range
func (p *Provider) GetCommits(ctx context.Context, projectID, repo string, from, to time.Time) ([]*model.Commit, error) {
	var result []*model.Commit

	for skip := 0; ; skip += commitPageSize {
		apiURL := fmt.Sprintf("%s/_apis/git/repositories/%s/commits?searchCriteria.$top=%d&searchCriteria.$skip=%d&api-version=%s",
			url.PathEscape(projectID), url.PathEscape(repo), commitPageSize, skip, apiVersion)
		if !from.IsZero() {
			apiURL += "&searchCriteria.fromDate=" + url.QueryEscape(from.UTC().Format(time.RFC3339))
		}
		if !to.IsZero() {
			apiURL += "&searchCriteria.toDate=" + url.QueryEscape(to.UTC().Format(time.RFC3339))
		}

		var response azureListResponse[azureCommit]
		if _, err := p.client.Get(ctx, apiURL, &response); err != nil {
			return nil, errm.Wrap(err, "failed to fetch commits")
		}

		for _, commit := range response.Value {
			result = append(result, &model.Commit{
				SHA:       commit.CommitID,
				Author:    commit.Author.Name,
				Email:     commit.Author.Email,
				Message:   commit.Comment,
				Timestamp: commit.Author.Date,
				Stats: model.CommitStats{
					FilesChanged: commit.ChangeCounts.Add + commit.ChangeCounts.Edit + commit.ChangeCounts.Delete,
				},
			})
		}

		if len(response.Value) < commitPageSize {
			break
		}
	}

	return result, nil
}

// ListPullRequests returns all pull requests of a project within the range
func (p *Provider) ListPullRequests(ctx context.Context, projectID string, from, to time.Time) ([]*model.PullRequest, error) {
	var result []*model.PullRequest

	for skip := 0; ; skip += prPageSize {
		apiURL := fmt.Sprintf("%s/_apis/git/pullrequests?searchCriteria.status=all&$top=%d&$skip=%d&api-version=%s",
			url.PathEscape(projectID), prPageSize, skip, apiVersion)
		if !from.IsZero() {
			apiURL += "&searchCriteria.minTime=" + url.QueryEscape(from.UTC().Format(time.RFC3339)) + "&searchCriteria.queryTimeRangeType=created"
		}

		var response azureListResponse[azurePullRequest]
		if _, err := p.client.Get(ctx, apiURL, &response); err != nil {
			return nil, errm.Wrap(err, "failed to fetch pull requests")
		}

		for _, pr := range response.Value {
			// maxTime filtering is unreliable on older server versions,
			// filter the upper bound client-side
			if !to.IsZero() && pr.CreationDate.After(to) {
				continue
			}

			reviewers := make([]model.Reviewer, 0, len(pr.Reviewers))
			for _, reviewer := range pr.Reviewers {
				reviewers = append(reviewers, model.Reviewer{
					Name: reviewer.DisplayName,
					Vote: reviewer.Vote,
				})
			}

			result = append(result, &model.PullRequest{
				ID:         pr.PullRequestID,
				Title:      pr.Title,
				Status:     convertStatus(pr.Status),
				Author:     pr.CreatedBy.DisplayName,
				Repository: pr.Repository.ID,
				CreatedAt:  pr.CreationDate,
				ClosedAt:   pr.ClosedDate,
				Reviewers:  reviewers,
			})
		}

		if len(response.Value) < prPageSize {
			break
		}
	}

	return result, nil
}

// CountPullRequestComments counts text comments per author across the PR's
// review threads
func (p *Provider) CountPullRequestComments(ctx context.Context, projectID string, pr *model.PullRequest) (map[string]int, error) {
	apiURL := fmt.Sprintf("%s/_apis/git/repositories/%s/pullRequests/%d/threads?api-version=%s",
		url.PathEscape(projectID), url.PathEscape(pr.Repository), pr.ID, apiVersion)

	var response azureListResponse[azureThread]
	if _, err := p.client.Get(ctx, apiURL, &response); err != nil {
		return nil, errm.Wrap(err, "failed to fetch pull request threads")
	}

	counts := make(map[string]int)
	for _, thread := range response.Value {
		for _, comment := range thread.Comments {
			if comment.CommentType != "text" {
				continue // skip system thread entries
			}
			counts[comment.Author.DisplayName]++
		}
	}
	return counts, nil
}

// ListWorkItems queries work items via WIQL and resolves their fields
func (p *Provider) ListWorkItems(ctx context.Context, projectID string, from, to time.Time) ([]*model.WorkItem, error) {
	query := "Select [System.Id] From WorkItems Where [System.TeamProject] = @project"
	if !from.IsZero() {
		query += fmt.Sprintf(" And [System.CreatedDate] >= '%s'", from.UTC().Format("2006-01-02"))
	}
	if !to.IsZero() {
		query += fmt.Sprintf(" And [System.CreatedDate] <= '%s'", to.UTC().Format("2006-01-02"))
	}
	query += " Order By [System.Id]"

	wiqlURL := fmt.Sprintf("%s/_apis/wit/wiql?api-version=%s", url.PathEscape(projectID), apiVersion)

	var wiqlResponse azureWiqlResponse
	if _, err := p.client.Post(ctx, wiqlURL, map[string]string{"query": query}, &wiqlResponse); err != nil {
		return nil, errm.Wrap(err, "failed to run work item query")
	}

	if len(wiqlResponse.WorkItems) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(wiqlResponse.WorkItems))
	for _, item := range wiqlResponse.WorkItems {
		ids = append(ids, item.ID)
	}

	var result []*model.WorkItem
	for start := 0; start < len(ids); start += workItemPageSize {
		end := min(start+workItemPageSize, len(ids))
		batch, err := p.getWorkItemBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		result = append(result, batch...)
	}

	return result, nil
}

func (p *Provider) getWorkItemBatch(ctx context.Context, ids []int) ([]*model.WorkItem, error) {
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, strconv.Itoa(id))
	}

	apiURL := fmt.Sprintf("_apis/wit/workitems?ids=%s&api-version=%s", strings.Join(idStrings, ","), apiVersion)

	var response azureListResponse[azureWorkItem]
	if _, err := p.client.Get(ctx, apiURL, &response); err != nil {
		return nil, errm.Wrap(err, "failed to fetch work item batch")
	}

	result := make([]*model.WorkItem, 0, len(response.Value))
	for _, item := range response.Value {
		fields := item.Fields
		workItem := &model.WorkItem{
			ID:        item.ID,
			Title:     fields.Title,
			Type:      fields.Type,
			State:     fields.State,
			AreaPath:  fields.AreaPath,
			CreatedAt: fields.CreatedDate,
		}
		if fields.AssignedTo != nil {
			workItem.Assignee = fields.AssignedTo.DisplayName
		}
		workItem.StoryPoints = lang.Deref(fields.StoryPoints)
		result = append(result, workItem)
	}
	return result, nil
}

func convertStatus(status string) model.PRStatus {
	switch status {
	case "completed":
		return model.PRStatusCompleted
	case "abandoned":
		return model.PRStatusAbandoned
	default:
		return model.PRStatusActive
	}
}
