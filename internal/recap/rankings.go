package recap

import (
	"sort"

	"github.com/maxbolgarin/devrecap/internal/model"
)

const leaderboardSize = 5

// buildRankings produces the top-5 leaderboards from the full contributor
// map, the raw commit list and the computed streaks. Every sort pins a
// deterministic secondary key (name or date ascending) so equal counts
// always order the same way.
func buildRankings(contributors map[string]*model.Contributor, commits []*model.Commit, streaks map[string]int) model.Rankings {
	return model.Rankings{
		MostCommits:      topBy(contributors, func(c *model.Contributor) int { return c.Commits }),
		MostPullRequests: topBy(contributors, func(c *model.Contributor) int { return c.PullRequests }),
		MostReviews:      topBy(contributors, func(c *model.Contributor) int { return c.Reviews }),
		MostComments:     topBy(contributors, func(c *model.Contributor) int { return c.Comments }),
		LongestStreaks:   topStreaks(streaks),
		BusiestDays:      busiestDays(commits),
	}
}

func topBy(contributors map[string]*model.Contributor, count func(*model.Contributor) int) []model.RankingEntry {
	entries := make([]model.RankingEntry, 0, len(contributors))
	for _, c := range contributors {
		entries = append(entries, model.RankingEntry{Name: c.Name, Count: count(c)})
	}
	return truncateEntries(entries)
}

func topStreaks(streaks map[string]int) []model.RankingEntry {
	entries := make([]model.RankingEntry, 0, len(streaks))
	for name, days := range streaks {
		entries = append(entries, model.RankingEntry{Name: name, Count: days})
	}
	return truncateEntries(entries)
}

func truncateEntries(entries []model.RankingEntry) []model.RankingEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries
}

// busiestDays groups commits by UTC calendar date and returns the top-5
// days by volume, ties broken by date ascending.
func busiestDays(commits []*model.Commit) []model.DayActivity {
	byDate := make(map[string]int)
	for _, commit := range commits {
		byDate[model.NewDate(commit.Timestamp).String()]++
	}

	days := make([]model.DayActivity, 0, len(byDate))
	for date, count := range byDate {
		days = append(days, model.DayActivity{Date: date, Commits: count})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Commits != days[j].Commits {
			return days[i].Commits > days[j].Commits
		}
		return days[i].Date < days[j].Date
	})
	if len(days) > leaderboardSize {
		days = days[:leaderboardSize]
	}
	return days
}
