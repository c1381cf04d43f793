package recap

import (
	"fmt"
	"math"

	"github.com/maxbolgarin/devrecap/internal/model"
)

// Default caps for generated narrative lists, overridable via config
const (
	defaultMaxHighlights = 8
	defaultMaxFunFacts   = 6
)

const minStreakForHighlight = 3

// buildHighlights evaluates a fixed, ordered checklist of candidate
// sentences against the aggregate stats. Each template fires at most once,
// in priority order, with no randomness. The list is capped at limit.
func buildHighlights(stats model.Stats, rankings model.Rankings, streakName string, streakDays, bugsTracked, limit int) []string {
	var highlights []string

	if stats.TotalCommits > 0 {
		highlights = append(highlights, fmt.Sprintf("🚀 %d commits pushed across the project", stats.TotalCommits))
	}
	if stats.TotalPullRequests > 0 {
		highlights = append(highlights, fmt.Sprintf("🔀 %d pull requests opened", stats.TotalPullRequests))
	}
	if stats.PRMergeRate > 0 {
		highlights = append(highlights, fmt.Sprintf("✅ %d%% of pull requests merged", stats.PRMergeRate))
	}
	if stats.TotalReviews > 0 {
		highlights = append(highlights, fmt.Sprintf("👀 %d code reviews delivered", stats.TotalReviews))
	}
	if stats.TotalBugsFixed > 0 {
		highlights = append(highlights, fmt.Sprintf("🐛 %d bugs squashed", stats.TotalBugsFixed))
	} else if bugsTracked > 0 {
		highlights = append(highlights, fmt.Sprintf("🔍 %d bugs tracked down", bugsTracked))
	}
	if stats.TotalStoryPoints > 0 {
		highlights = append(highlights, fmt.Sprintf("📦 %.0f story points completed", stats.TotalStoryPoints))
	}
	if len(rankings.MostCommits) > 0 && rankings.MostCommits[0].Count > 0 {
		top := rankings.MostCommits[0]
		highlights = append(highlights, fmt.Sprintf("🏆 %s led the charge with %d commits", top.Name, top.Count))
	}
	if streakDays >= minStreakForHighlight {
		highlights = append(highlights, fmt.Sprintf("🔥 %s kept a %d-day commit streak alive", streakName, streakDays))
	}
	if len(rankings.BusiestDays) > 0 {
		busiest := rankings.BusiestDays[0]
		highlights = append(highlights, fmt.Sprintf("📅 Busiest day: %s with %d commits", busiest.Date, busiest.Commits))
	}

	if len(highlights) > limit {
		highlights = highlights[:limit]
	}
	return highlights
}

// buildFunFacts converts activity patterns, streaks and merge speed into
// colloquial one-liners. Same template-selection discipline as highlights.
func buildFunFacts(pattern *model.ActivityPattern, weekend, weekday int, avgMergeHours float64, streakName string, streakDays, limit int) []string {
	var facts []string

	if pattern != nil {
		switch {
		case pattern.BusiestHour >= 21 || pattern.BusiestHour <= 4:
			facts = append(facts, fmt.Sprintf("🦉 Night owls: most commits landed around %02d:00", pattern.BusiestHour))
		case pattern.BusiestHour >= 5 && pattern.BusiestHour <= 8:
			facts = append(facts, fmt.Sprintf("🐓 Early birds: most commits landed around %02d:00", pattern.BusiestHour))
		default:
			facts = append(facts, fmt.Sprintf("⏰ Peak productivity: %s, around %02d:00", pattern.PeakTime, pattern.BusiestHour))
		}
	}

	total := weekend + weekday
	if total > 0 {
		if weekend > weekday {
			facts = append(facts, "🎮 Weekend warriors: more commits on weekends than on weekdays")
		} else {
			share := int(math.Round(100 * float64(weekday) / float64(total)))
			facts = append(facts, fmt.Sprintf("☕ Strictly business: %d%% of commits landed on weekdays", share))
		}
	}

	if avgMergeHours > 0 {
		switch {
		case avgMergeHours < 24:
			facts = append(facts, "⚡ Lightning merges: pull requests merged in under a day on average")
		case avgMergeHours <= 72:
			facts = append(facts, fmt.Sprintf("⏳ Pull requests took about %.0f hours to merge on average", avgMergeHours))
		default:
			facts = append(facts, fmt.Sprintf("🧐 Thorough reviews: pull requests averaged %.0f days to merge", avgMergeHours/24))
		}
	}

	if pattern != nil && pattern.BusiestDay != "" {
		facts = append(facts, fmt.Sprintf("📆 %s was the favorite day to ship", pattern.BusiestDay))
	}

	if streakDays >= minStreakForHighlight {
		facts = append(facts, fmt.Sprintf("🔥 Longest commit streak: %d days, held by %s", streakDays, streakName))
	}

	if len(facts) > limit {
		facts = facts[:limit]
	}
	return facts
}
