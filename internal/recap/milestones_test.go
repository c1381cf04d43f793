package recap

import (
	"strings"
	"testing"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMilestones(t *testing.T) {
	from := ts(1, 0)
	to := ts(28, 0)

	commits := []*model.Commit{
		{SHA: "c", Author: "Alice", Message: "add payment flow", Timestamp: ts(10, 12)},
		{SHA: "a", Author: "Alice", Message: "initial commit", Timestamp: ts(2, 9)},
		{SHA: "b", Author: "Bob", Message: "wire ci", Timestamp: ts(5, 16)},
	}

	t.Run("full period with commits", func(t *testing.T) {
		milestones := buildMilestones(&from, &to, commits, 10)
		require.Len(t, milestones, 4)

		assert.Equal(t, "Period Start", milestones[0].Title)
		assert.Equal(t, "First Commit", milestones[1].Title)
		assert.Equal(t, "initial commit", milestones[1].Description)
		assert.Equal(t, "Halfway There", milestones[2].Title)
		assert.Equal(t, "Period End", milestones[3].Title)
	})

	t.Run("sorted ascending by date", func(t *testing.T) {
		milestones := buildMilestones(&from, &to, commits, 150)
		assert.True(t, isSortedByDate(milestones))
	})

	t.Run("pr threshold milestone", func(t *testing.T) {
		milestones := buildMilestones(&from, &to, nil, 150)
		require.Len(t, milestones, 3)
		assert.Equal(t, "100 Pull Requests", milestones[1].Title)
		assert.Equal(t, "Period End", milestones[2].Title)
	})

	t.Run("below threshold no celebration", func(t *testing.T) {
		milestones := buildMilestones(&from, &to, nil, 99)
		require.Len(t, milestones, 2)
	})

	t.Run("no bounds no commits", func(t *testing.T) {
		assert.Empty(t, buildMilestones(nil, nil, nil, 0))
	})

	t.Run("only start bound", func(t *testing.T) {
		milestones := buildMilestones(&from, nil, nil, 200)
		require.Len(t, milestones, 1)
		assert.Equal(t, "Period Start", milestones[0].Title)
	})
}

func isSortedByDate(milestones []model.Milestone) bool {
	for i := 1; i < len(milestones); i++ {
		if milestones[i].Date.Before(milestones[i-1].Date.Time) {
			return false
		}
	}
	return true
}

func TestFirstCommitDescription(t *testing.T) {
	t.Run("empty message falls back", func(t *testing.T) {
		assert.Equal(t, "The journey begins", firstCommitDescription(""))
	})

	t.Run("short message kept verbatim", func(t *testing.T) {
		assert.Equal(t, "fix typo", firstCommitDescription("fix typo"))
	})

	t.Run("long message truncated to fifty runes", func(t *testing.T) {
		long := strings.Repeat("коммит ", 20)
		desc := firstCommitDescription(long)
		assert.Equal(t, 50, len([]rune(desc)))
	})
}

func TestBuildMilestonesHalfwayDescription(t *testing.T) {
	commits := make([]*model.Commit, 6)
	for i := range commits {
		commits[i] = &model.Commit{Author: "Alice", Timestamp: ts(i+1, 10).Add(time.Minute)}
	}

	milestones := buildMilestones(nil, nil, commits, 0)
	require.Len(t, milestones, 2)
	assert.Equal(t, "Commit 4 of 6, still going strong", milestones[1].Description)
}
