package recap

import (
	"sort"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
)

const oneDay = 24 * time.Hour

// longestStreaks computes, per contributor, the longest run of
// calendar-consecutive UTC days with at least one commit. Multiple commits
// on one day count once.
func longestStreaks(commits []*model.Commit) map[string]int {
	days := make(map[string]map[time.Time]struct{})
	for _, commit := range commits {
		set, ok := days[commit.Author]
		if !ok {
			set = make(map[time.Time]struct{})
			days[commit.Author] = set
		}
		set[model.NewDate(commit.Timestamp).Time] = struct{}{}
	}

	streaks := make(map[string]int, len(days))
	for author, set := range days {
		streaks[author] = longestRun(set)
	}
	return streaks
}

// overallStreak returns the longest streak across all contributors,
// ties broken by name ascending.
func overallStreak(streaks map[string]int) (string, int) {
	var bestName string
	var bestDays int
	for name, days := range streaks {
		if days > bestDays || (days == bestDays && (bestName == "" || name < bestName)) {
			bestName, bestDays = name, days
		}
	}
	return bestName, bestDays
}

// longestRun walks the sorted distinct dates and counts the longest run of
// adjacent dates exactly one day apart.
func longestRun(set map[time.Time]struct{}) int {
	if len(set) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == oneDay {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}
