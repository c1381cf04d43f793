package recap

import (
	"fmt"
	"sort"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
)

const (
	// prMilestoneThreshold is the PR volume that earns a celebratory
	// milestone at the end of the period.
	prMilestoneThreshold = 100

	firstCommitDescLimit = 50
)

// buildMilestones derives the dated narrative events of the period:
// period bounds when supplied, first commit and halfway point when commits
// exist, and a celebration when PR volume crosses the threshold. The result
// is sorted ascending by date; generation order is kept on equal dates.
func buildMilestones(from, to *time.Time, commits []*model.Commit, totalPRs int) []model.Milestone {
	var milestones []model.Milestone

	if from != nil {
		milestones = append(milestones, model.Milestone{
			Date:        model.NewDate(*from),
			Title:       "Period Start",
			Description: "The clock starts ticking",
			Icon:        "🚀",
		})
	}

	if len(commits) > 0 {
		sorted := make([]*model.Commit, len(commits))
		copy(sorted, commits)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})

		first := sorted[0]
		milestones = append(milestones, model.Milestone{
			Date:        model.NewDate(first.Timestamp),
			Title:       "First Commit",
			Description: firstCommitDescription(first.Message),
			Icon:        "🎉",
		})

		mid := len(sorted) / 2
		milestones = append(milestones, model.Milestone{
			Date:        model.NewDate(sorted[mid].Timestamp),
			Title:       "Halfway There",
			Description: fmt.Sprintf("Commit %d of %d, still going strong", mid+1, len(sorted)),
			Icon:        "⛰️",
		})
	}

	if totalPRs >= prMilestoneThreshold && to != nil {
		milestones = append(milestones, model.Milestone{
			Date:        model.NewDate(*to),
			Title:       fmt.Sprintf("%d Pull Requests", prMilestoneThreshold),
			Description: fmt.Sprintf("The team crossed %d pull requests", prMilestoneThreshold),
			Icon:        "🎊",
		})
	}

	if to != nil {
		milestones = append(milestones, model.Milestone{
			Date:        model.NewDate(*to),
			Title:       "Period End",
			Description: "That's a wrap",
			Icon:        "🏁",
		})
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Date.Before(milestones[j].Date.Time)
	})
	return milestones
}

func firstCommitDescription(message string) string {
	if message == "" {
		return "The journey begins"
	}
	runes := []rune(message)
	if len(runes) > firstCommitDescLimit {
		return string(runes[:firstCommitDescLimit])
	}
	return message
}
