package recap

import (
	"strings"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
)

const (
	fallbackModuleName  = "General"
	defaultModuleStatus = "In Progress"

	// Completed PRs with a lifetime above this are treated as data noise
	// and excluded from merge time averages.
	mergeTimeCeiling = 365 * 24 * time.Hour
)

// doneStates are the work item states treated as "done" across platforms
var doneStates = []string{"done", "closed", "completed", "resolved"}

// aggregateContributors folds the snapshot into a per-contributor map.
// Identity is exact display name match, no normalization. Commit authors,
// PR authors, reviewers and commenters all create entries on first sight.
// Work item assignees do NOT: items assigned to someone who never appears
// in commit or PR activity are counted in totals but not attributed.
func aggregateContributors(s *model.Snapshot) map[string]*model.Contributor {
	contributors := make(map[string]*model.Contributor)

	get := func(name string) *model.Contributor {
		c, ok := contributors[name]
		if !ok {
			c = &model.Contributor{Name: name}
			contributors[name] = c
		}
		return c
	}

	for _, commit := range s.Commits {
		get(commit.Author).Commits++
	}

	for _, pr := range s.PullRequests {
		get(pr.Author).PullRequests++
		for _, reviewer := range pr.Reviewers {
			get(reviewer.Name).Reviews++
		}
	}

	for name, count := range s.CommentCounts {
		get(name).Comments += count
	}

	for _, item := range s.WorkItems {
		c, ok := contributors[item.Assignee]
		if !ok {
			continue
		}
		if isBug(item) && isDone(item) {
			c.BugsFixed++
		}
		c.StoryPointsDone += item.StoryPoints
	}

	return contributors
}

// aggregateModules groups work items by the last segment of their area path
func aggregateModules(items []*model.WorkItem) map[string]*model.Module {
	modules := make(map[string]*model.Module)

	for _, item := range items {
		name := moduleName(item.AreaPath)
		m, ok := modules[name]
		if !ok {
			m = &model.Module{Name: name, Status: defaultModuleStatus}
			modules[name] = m
		}
		m.PullRequests++
		m.StoryPoints += item.StoryPoints
	}

	return modules
}

// avgMergeTimes returns the average PR merge time in hours per author.
// Only completed PRs with a strictly positive lifetime under the sanity
// ceiling participate.
func avgMergeTimes(prs []*model.PullRequest) map[string]float64 {
	totals := make(map[string]time.Duration)
	counts := make(map[string]int)

	for _, pr := range prs {
		d, ok := mergeDuration(pr)
		if !ok {
			continue
		}
		totals[pr.Author] += d
		counts[pr.Author]++
	}

	result := make(map[string]float64, len(counts))
	for author, total := range totals {
		result[author] = total.Hours() / float64(counts[author])
	}
	return result
}

// overallAvgMergeTime returns the average merge time in hours across all
// completed PRs, zero when none qualify.
func overallAvgMergeTime(prs []*model.PullRequest) float64 {
	var total time.Duration
	var count int
	for _, pr := range prs {
		if d, ok := mergeDuration(pr); ok {
			total += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total.Hours() / float64(count)
}

func mergeDuration(pr *model.PullRequest) (time.Duration, bool) {
	if pr.Status != model.PRStatusCompleted || pr.ClosedAt == nil {
		return 0, false
	}
	d := pr.ClosedAt.Sub(pr.CreatedAt)
	if d <= 0 || d >= mergeTimeCeiling {
		return 0, false
	}
	return d, true
}

// moduleName resolves an area path like `Team\Backend\API` to its last
// segment. Absent or empty paths fall back to "General".
func moduleName(areaPath string) string {
	path := strings.TrimSpace(areaPath)
	if path == "" {
		return fallbackModuleName
	}
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '\\' || r == '/'
	})
	if len(segments) == 0 {
		return fallbackModuleName
	}
	return segments[len(segments)-1]
}

func isBug(item *model.WorkItem) bool {
	return strings.EqualFold(item.Type, "Bug")
}

func isDone(item *model.WorkItem) bool {
	for _, state := range doneStates {
		if strings.EqualFold(item.State, state) {
			return true
		}
	}
	return false
}

// countBugs returns fixed (done) and tracked (any state) bug counts
func countBugs(items []*model.WorkItem) (fixed, tracked int) {
	for _, item := range items {
		if !isBug(item) {
			continue
		}
		tracked++
		if isDone(item) {
			fixed++
		}
	}
	return fixed, tracked
}

// workItemTypeBreakdown counts work items per free-text type
func workItemTypeBreakdown(items []*model.WorkItem) map[string]int {
	if len(items) == 0 {
		return nil
	}
	breakdown := make(map[string]int)
	for _, item := range items {
		breakdown[item.Type]++
	}
	return breakdown
}
