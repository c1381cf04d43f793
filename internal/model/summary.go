package model

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date that serializes as YYYY-MM-DD.
// The document schema is a public contract consumed by the slide renderer
// and by hand-authored uploads, so dates must stay plain calendar strings.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar date.
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// EndOfDay returns the last instant of the calendar day, for using a Date
// as an inclusive upper bound of a period.
func (d Date) EndOfDay() time.Time {
	return d.Time.Add(24*time.Hour - time.Nanosecond)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange bounds one recap period. Either side may be absent.
type DateRange struct {
	Start *Date `json:"start,omitempty"`
	End   *Date `json:"end,omitempty"`
}

// Summary is the root recap document. Field names, optionality and numeric
// semantics are a public contract: the slide frontend and third-party
// generated uploads depend on them, so they must not drift.
type Summary struct {
	ProjectName  string        `json:"projectName"`
	Version      string        `json:"version,omitempty"`
	DateRange    DateRange     `json:"dateRange"`
	Stats        Stats         `json:"stats"`
	Contributors []Contributor `json:"contributors"`
	Modules      []Module      `json:"modules"`
	Rankings     Rankings      `json:"rankings"`
	Highlights   []string      `json:"highlights"`
	Milestones   []Milestone   `json:"milestones"`

	// Extended blocks, optional in the schema.
	RepoStats       *RepoStats       `json:"repoStats,omitempty"`
	ActivityPattern *ActivityPattern `json:"activityPattern,omitempty"`
	FunFacts        []string         `json:"funFacts,omitempty"`
	WorkItemTypes   map[string]int   `json:"workItemTypes,omitempty"`
}

// Stats is the aggregate numbers block of the summary
type Stats struct {
	TotalCommits       int     `json:"totalCommits"`
	TotalPullRequests  int     `json:"totalPullRequests"`
	TotalReviews       int     `json:"totalReviews"`
	TotalComments      int     `json:"totalComments"`
	TotalBugsFixed     int     `json:"totalBugsFixed"`
	TotalStoryPoints   float64 `json:"totalStoryPoints"`
	ActiveContributors int     `json:"activeContributors"`
	SprintsCompleted   int     `json:"sprintsCompleted"`
	PRMergeRate        int     `json:"prMergeRate"` // percentage, 0-100
}

// Contributor is one person's aggregated activity, keyed by exact display
// name match across commits, pull requests and work items.
type Contributor struct {
	Name            string  `json:"name"`
	Commits         int     `json:"commits"`
	PullRequests    int     `json:"pullRequests"`
	Reviews         int     `json:"reviews"`
	Comments        int     `json:"comments"`
	BugsFixed       int     `json:"bugsFixed"`
	StoryPointsDone float64 `json:"storyPointsDone"`

	AvgMergeTimeHours float64 `json:"avgMergeTimeHours,omitempty"`
	LongestStreak     int     `json:"longestStreak,omitempty"`
	FavoriteHour      *int    `json:"favoriteHour,omitempty"`
}

// Module is a reporting bucket derived from work item area paths
type Module struct {
	Name         string  `json:"name"`
	PullRequests int     `json:"pullRequests"`
	StoryPoints  float64 `json:"storyPoints"`
	Status       string  `json:"status"`
}

// RankingEntry is one row of a leaderboard
type RankingEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayActivity is one calendar day's commit volume
type DayActivity struct {
	Date    string `json:"date"` // YYYY-MM-DD, UTC
	Commits int    `json:"commits"`
}

// Rankings holds the top-5 leaderboards
type Rankings struct {
	MostCommits      []RankingEntry `json:"mostCommits"`
	MostPullRequests []RankingEntry `json:"mostPullRequests"`
	MostReviews      []RankingEntry `json:"mostReviews"`
	MostComments     []RankingEntry `json:"mostComments"`
	LongestStreaks   []RankingEntry `json:"longestStreaks,omitempty"`
	BusiestDays      []DayActivity  `json:"busiestDays"`
}

// ActivityPattern describes when the team commits
type ActivityPattern struct {
	ByHour      [24]int `json:"byHour"`
	ByDay       [7]int  `json:"byDay"` // index 0 = Sunday
	BusiestHour int     `json:"busiestHour"`
	BusiestDay  string  `json:"busiestDay"`
	PeakTime    string  `json:"peakTime"` // Morning, Afternoon, Evening, Night
}

// Milestone is a dated narrative marker in the project timeline
type Milestone struct {
	Date        Date   `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// RepoStats aggregates per-commit file change counts, when providers
// supply them.
type RepoStats struct {
	FilesChanged int `json:"filesChanged"`
	Additions    int `json:"additions"`
	Deletions    int `json:"deletions"`
}

// FieldError is one schema validation failure of an uploaded document
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
