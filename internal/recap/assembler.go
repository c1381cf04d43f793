package recap

import (
	"math"
	"sort"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
)

const (
	maxContributors = 10
	maxModules      = 6

	sprintLength = 14 * 24 * time.Hour
)

// Input is everything one recap build needs: caller metadata, optional
// period bounds and the fully fetched snapshot.
type Input struct {
	ProjectName string
	Version     string
	From        *time.Time
	To          *time.Time
	Snapshot    *model.Snapshot

	MaxHighlights int
	MaxFunFacts   int
}

// Build runs the aggregation pipeline over one immutable snapshot and
// assembles the final summary document. It is deterministic and never
// fails: missing optional data degrades to zero values and empty lists.
func Build(in Input) *model.Summary {
	if in.Snapshot == nil {
		in.Snapshot = &model.Snapshot{}
	}
	if in.MaxHighlights <= 0 {
		in.MaxHighlights = defaultMaxHighlights
	}
	if in.MaxFunFacts <= 0 {
		in.MaxFunFacts = defaultMaxFunFacts
	}
	s := in.Snapshot

	contributors := aggregateContributors(s)
	modules := aggregateModules(s.WorkItems)
	streaks := longestStreaks(s.Commits)

	enrichContributors(contributors, streaks, favoriteHours(s.Commits), avgMergeTimes(s.PullRequests))

	rankings := buildRankings(contributors, s.Commits, streaks)
	stats := buildStats(in.From, in.To, s, contributors)

	_, bugsTracked := countBugs(s.WorkItems)
	streakName, streakDays := overallStreak(streaks)

	summary := &model.Summary{
		ProjectName:   in.ProjectName,
		Version:       in.Version,
		DateRange:     dateRange(in.From, in.To),
		Stats:         stats,
		Contributors:  topContributors(contributors),
		Modules:       topModules(modules),
		Rankings:      rankings,
		Milestones:    buildMilestones(in.From, in.To, s.Commits, stats.TotalPullRequests),
		Highlights:    buildHighlights(stats, rankings, streakName, streakDays, bugsTracked, in.MaxHighlights),
		RepoStats:     repoStats(s.Commits),
		WorkItemTypes: workItemTypeBreakdown(s.WorkItems),
	}

	if len(s.Commits) > 0 {
		pattern := analyzeActivity(s.Commits)
		weekend, weekday := weekendSplit(s.Commits)
		summary.ActivityPattern = pattern
		summary.FunFacts = buildFunFacts(pattern, weekend, weekday, overallAvgMergeTime(s.PullRequests), streakName, streakDays, in.MaxFunFacts)
	}

	return summary
}

func buildStats(from, to *time.Time, s *model.Snapshot, contributors map[string]*model.Contributor) model.Stats {
	stats := model.Stats{
		TotalCommits:       len(s.Commits),
		TotalPullRequests:  len(s.PullRequests),
		ActiveContributors: len(contributors),
		SprintsCompleted:   sprintsCompleted(from, to),
	}

	var completed int
	for _, pr := range s.PullRequests {
		stats.TotalReviews += len(pr.Reviewers)
		if pr.Status == model.PRStatusCompleted {
			completed++
		}
	}
	if stats.TotalPullRequests > 0 {
		stats.PRMergeRate = int(math.Round(100 * float64(completed) / float64(stats.TotalPullRequests)))
	}

	for _, count := range s.CommentCounts {
		stats.TotalComments += count
	}

	fixed, _ := countBugs(s.WorkItems)
	stats.TotalBugsFixed = fixed
	for _, item := range s.WorkItems {
		stats.TotalStoryPoints += item.StoryPoints
	}

	return stats
}

// sprintsCompleted counts whole 14-day periods in the range, zero without
// both bounds.
func sprintsCompleted(from, to *time.Time) int {
	if from == nil || to == nil || to.Before(*from) {
		return 0
	}
	// inclusive end-of-day bounds sit a nanosecond short of the full day
	return int(to.Sub(*from).Round(time.Second) / sprintLength)
}

func enrichContributors(contributors map[string]*model.Contributor, streaks, favorites map[string]int, mergeTimes map[string]float64) {
	for name, c := range contributors {
		c.LongestStreak = streaks[name]
		c.AvgMergeTimeHours = mergeTimes[name]
		if hour, ok := favorites[name]; ok {
			h := hour
			c.FavoriteHour = &h
		}
	}
}

// topContributors returns the top 10 by commit count, name ascending on ties
func topContributors(contributors map[string]*model.Contributor) []model.Contributor {
	list := make([]model.Contributor, 0, len(contributors))
	for _, c := range contributors {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Commits != list[j].Commits {
			return list[i].Commits > list[j].Commits
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > maxContributors {
		list = list[:maxContributors]
	}
	return list
}

// topModules returns the top 6 by story points, name ascending on ties
func topModules(modules map[string]*model.Module) []model.Module {
	list := make([]model.Module, 0, len(modules))
	for _, m := range modules {
		list = append(list, *m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].StoryPoints != list[j].StoryPoints {
			return list[i].StoryPoints > list[j].StoryPoints
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > maxModules {
		list = list[:maxModules]
	}
	return list
}

func repoStats(commits []*model.Commit) *model.RepoStats {
	var stats model.RepoStats
	for _, commit := range commits {
		stats.FilesChanged += commit.Stats.FilesChanged
		stats.Additions += commit.Stats.Additions
		stats.Deletions += commit.Stats.Deletions
	}
	if stats.FilesChanged == 0 && stats.Additions == 0 && stats.Deletions == 0 {
		return nil
	}
	return &stats
}

func dateRange(from, to *time.Time) model.DateRange {
	var r model.DateRange
	if from != nil {
		d := model.NewDate(*from)
		r.Start = &d
	}
	if to != nil {
		d := model.NewDate(*to)
		r.End = &d
	}
	return r
}
