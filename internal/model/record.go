package model

import "time"

// PRStatus is a normalized pull request lifecycle status across providers.
type PRStatus string

const (
	PRStatusActive    PRStatus = "active"
	PRStatusCompleted PRStatus = "completed"
	PRStatusAbandoned PRStatus = "abandoned"
)

// Reviewer votes, Azure DevOps scale. Other providers map onto it.
const (
	VoteApproved                = 10
	VoteApprovedWithSuggestions = 5
	VoteNone                    = 0
	VoteWaiting                 = -5
	VoteRejected                = -10
)

// Commit represents a single commit fetched from a provider
type Commit struct {
	SHA       string      `json:"sha"`
	Author    string      `json:"author"`
	Email     string      `json:"email"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Stats     CommitStats `json:"stats"`
}

// CommitStats represents change counts of a commit. Best-effort
// enrichment: providers fill what their API exposes and leave the rest
// zero.
type CommitStats struct {
	FilesChanged int `json:"files_changed"`
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
}

// Reviewer is a single reviewer entry on a pull request
type Reviewer struct {
	Name string `json:"name"`
	Vote int    `json:"vote"`
}

// PullRequest represents a pull/merge request across different providers
type PullRequest struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Status     PRStatus   `json:"status"`
	Author     string     `json:"author"`
	Repository string     `json:"repository"`
	CreatedAt  time.Time  `json:"created_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Reviewers  []Reviewer `json:"reviewers,omitempty"`
}

// WorkItem represents a work tracking item (bug, story, task).
// Adapters resolve provider field bags into this closed shape, the
// aggregation core never sees raw platform payloads.
type WorkItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`  // free-text category: "Bug", "Feature", "User Story"...
	State       string    `json:"state"` // free-text state: "Done", "Closed", "Active"...
	Assignee    string    `json:"assignee,omitempty"`
	StoryPoints float64   `json:"story_points,omitempty"`
	AreaPath    string    `json:"area_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is the complete, already-fetched input of one recap run.
// The core treats it as immutable and never re-fetches.
type Snapshot struct {
	Commits      []*Commit
	PullRequests []*PullRequest
	WorkItems    []*WorkItem

	// CommentCounts maps author display name to the number of review
	// comments written, collected from PR threads as best-effort enrichment.
	CommentCounts map[string]int
}
