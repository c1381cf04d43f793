package azure

import "time"

// Azure DevOps REST API response types.
// https://learn.microsoft.com/en-us/rest/api/azure/devops/git

type azureListResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

type azureRepository struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type azureIdentity struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
}

type azureCommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type azureCommit struct {
	CommitID     string            `json:"commitId"`
	Author       azureCommitAuthor `json:"author"`
	Comment      string            `json:"comment"`
	ChangeCounts struct {
		Add    int `json:"Add"`
		Edit   int `json:"Edit"`
		Delete int `json:"Delete"`
	} `json:"changeCounts"`
}

type azureReviewer struct {
	DisplayName string `json:"displayName"`
	Vote        int    `json:"vote"`
}

type azurePullRequest struct {
	PullRequestID int             `json:"pullRequestId"`
	Title         string          `json:"title"`
	Status        string          `json:"status"` // active, completed, abandoned
	CreatedBy     azureIdentity   `json:"createdBy"`
	CreationDate  time.Time       `json:"creationDate"`
	ClosedDate    *time.Time      `json:"closedDate"`
	Reviewers     []azureReviewer `json:"reviewers"`
	Repository    azureRepository `json:"repository"`
}

type azureThreadComment struct {
	Author      azureIdentity `json:"author"`
	CommentType string        `json:"commentType"` // text, system
	Content     string        `json:"content"`
}

type azureThread struct {
	Comments []azureThreadComment `json:"comments"`
}

type azureWiqlResponse struct {
	WorkItems []struct {
		ID int `json:"id"`
	} `json:"workItems"`
}

// azureWorkItemFields resolves the platform's string-keyed field bag into
// a closed shape once, at the adapter boundary.
type azureWorkItemFields struct {
	Title       string         `json:"System.Title"`
	Type        string         `json:"System.WorkItemType"`
	State       string         `json:"System.State"`
	AssignedTo  *azureIdentity `json:"System.AssignedTo"`
	AreaPath    string         `json:"System.AreaPath"`
	CreatedDate time.Time      `json:"System.CreatedDate"`
	StoryPoints *float64       `json:"Microsoft.VSTS.Scheduling.StoryPoints"`
}

type azureWorkItem struct {
	ID     int                 `json:"id"`
	Fields azureWorkItemFields `json:"fields"`
}
