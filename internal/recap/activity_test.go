package recap

import (
	"testing"
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeActivity(t *testing.T) {
	// March 1 2025 is a Saturday
	commits := []*model.Commit{
		{Author: "Alice", Timestamp: ts(1, 14)},
		{Author: "Alice", Timestamp: ts(1, 14)},
		{Author: "Bob", Timestamp: ts(3, 9)},
	}

	pattern := analyzeActivity(commits)

	assert.Equal(t, 2, pattern.ByHour[14])
	assert.Equal(t, 1, pattern.ByHour[9])
	assert.Equal(t, 2, pattern.ByDay[int(time.Saturday)])
	assert.Equal(t, 1, pattern.ByDay[int(time.Monday)])
	assert.Equal(t, 14, pattern.BusiestHour)
	assert.Equal(t, "Saturday", pattern.BusiestDay)
	assert.Equal(t, "Afternoon", pattern.PeakTime)
}

func TestAnalyzeActivityUsesUTC(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	commits := []*model.Commit{
		{Author: "Alice", Timestamp: time.Date(2025, time.March, 2, 2, 0, 0, 0, zone)}, // 21:00 March 1 UTC
	}

	pattern := analyzeActivity(commits)

	assert.Equal(t, 1, pattern.ByHour[21])
	assert.Equal(t, 1, pattern.ByDay[int(time.Saturday)])
}

func TestPeakTimeLabel(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{hour: 5, expected: "Morning"},
		{hour: 11, expected: "Morning"},
		{hour: 12, expected: "Afternoon"},
		{hour: 16, expected: "Afternoon"},
		{hour: 17, expected: "Evening"},
		{hour: 20, expected: "Evening"},
		{hour: 21, expected: "Night"},
		{hour: 0, expected: "Night"},
		{hour: 4, expected: "Night"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, peakTimeLabel(tt.hour))
		})
	}
}

func TestFavoriteHours(t *testing.T) {
	commits := []*model.Commit{
		{Author: "Alice", Timestamp: ts(1, 9)},
		{Author: "Alice", Timestamp: ts(2, 9)},
		{Author: "Alice", Timestamp: ts(2, 15)},
		{Author: "Bob", Timestamp: ts(1, 22)},
	}

	favorites := favoriteHours(commits)

	require.Len(t, favorites, 2)
	assert.Equal(t, 9, favorites["Alice"])
	assert.Equal(t, 22, favorites["Bob"])
}

func TestWeekendSplit(t *testing.T) {
	commits := []*model.Commit{
		{Timestamp: ts(1, 10)}, // Saturday
		{Timestamp: ts(2, 10)}, // Sunday
		{Timestamp: ts(3, 10)}, // Monday
	}

	weekend, weekday := weekendSplit(commits)
	assert.Equal(t, 2, weekend)
	assert.Equal(t, 1, weekday)
}

func TestMaxIndex(t *testing.T) {
	t.Run("first max wins on ties", func(t *testing.T) {
		assert.Equal(t, 1, maxIndex([]int{0, 3, 3, 1}))
	})
	t.Run("all zeros resolve to zero", func(t *testing.T) {
		assert.Equal(t, 0, maxIndex([]int{0, 0, 0}))
	})
}
