package recap

import (
	"testing"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongestStreaks(t *testing.T) {
	t.Run("three consecutive days", func(t *testing.T) {
		commits := []*model.Commit{
			{Author: "Alice", Timestamp: ts(1, 10)},
			{Author: "Alice", Timestamp: ts(2, 8)},
			{Author: "Alice", Timestamp: ts(3, 23)},
		}
		streaks := longestStreaks(commits)
		assert.Equal(t, 3, streaks["Alice"])
	})

	t.Run("gap resets the run", func(t *testing.T) {
		commits := []*model.Commit{
			{Author: "Bob", Timestamp: ts(1, 10)},
			{Author: "Bob", Timestamp: ts(2, 10)},
			{Author: "Bob", Timestamp: ts(4, 10)},
		}
		streaks := longestStreaks(commits)
		assert.Equal(t, 2, streaks["Bob"])
	})

	t.Run("multiple commits per day count once", func(t *testing.T) {
		commits := []*model.Commit{
			{Author: "Carol", Timestamp: ts(5, 9)},
			{Author: "Carol", Timestamp: ts(5, 12)},
			{Author: "Carol", Timestamp: ts(5, 18)},
		}
		streaks := longestStreaks(commits)
		assert.Equal(t, 1, streaks["Carol"])
	})

	t.Run("no commits", func(t *testing.T) {
		assert.Empty(t, longestStreaks(nil))
	})
}

func TestOverallStreak(t *testing.T) {
	t.Run("longest wins", func(t *testing.T) {
		name, days := overallStreak(map[string]int{"Alice": 2, "Bob": 5})
		assert.Equal(t, "Bob", name)
		assert.Equal(t, 5, days)
	})

	t.Run("ties break by name ascending", func(t *testing.T) {
		name, days := overallStreak(map[string]int{"Bob": 3, "Alice": 3})
		assert.Equal(t, "Alice", name)
		assert.Equal(t, 3, days)
	})

	t.Run("empty map", func(t *testing.T) {
		name, days := overallStreak(nil)
		assert.Empty(t, name)
		assert.Zero(t, days)
	})
}

func TestLongestRun(t *testing.T) {
	set := map[time.Time]struct{}{
		model.NewDate(ts(1, 5)).Time:  {},
		model.NewDate(ts(2, 5)).Time:  {},
		model.NewDate(ts(10, 5)).Time: {},
		model.NewDate(ts(11, 5)).Time: {},
		model.NewDate(ts(12, 5)).Time: {},
	}
	require.Equal(t, 3, longestRun(set))
}
