package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
	"projectName": "payments",
	"version": "1.0",
	"dateRange": {"start": "2025-01-01", "end": "2025-03-31"},
	"stats": {"totalCommits": 42, "totalPullRequests": 7, "prMergeRate": 85},
	"contributors": [{"name": "Alice", "commits": 42}],
	"modules": [{"name": "API", "storyPoints": 13, "status": "In Progress"}],
	"rankings": {"mostCommits": [{"name": "Alice", "count": 42}], "busiestDays": []},
	"highlights": ["42 commits pushed"],
	"milestones": [{"date": "2025-01-02", "title": "First Commit"}]
}`

func TestValidate(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		fieldErrors, err := Validate([]byte(validDocument))
		require.NoError(t, err)
		assert.Empty(t, fieldErrors)
	})

	t.Run("missing required fields are reported", func(t *testing.T) {
		fieldErrors, err := Validate([]byte(`{"projectName": "payments"}`))
		require.NoError(t, err)
		assert.NotEmpty(t, fieldErrors)

		fields := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields = append(fields, fe.Field)
			assert.NotEmpty(t, fe.Message)
		}
		assert.Contains(t, fields, "(root)")
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		doc := `{
			"projectName": "payments",
			"dateRange": {"start": "January 1st"},
			"stats": {"totalCommits": 0, "totalPullRequests": 0},
			"contributors": [],
			"modules": [],
			"rankings": {},
			"highlights": [],
			"milestones": []
		}`
		fieldErrors, err := Validate([]byte(doc))
		require.NoError(t, err)
		assert.NotEmpty(t, fieldErrors)
	})

	t.Run("negative counters are rejected", func(t *testing.T) {
		doc := `{
			"projectName": "payments",
			"dateRange": {},
			"stats": {"totalCommits": -1, "totalPullRequests": 0},
			"contributors": [],
			"modules": [],
			"rankings": {},
			"highlights": [],
			"milestones": []
		}`
		fieldErrors, err := Validate([]byte(doc))
		require.NoError(t, err)
		assert.NotEmpty(t, fieldErrors)
	})

	t.Run("oversized leaderboard is rejected", func(t *testing.T) {
		doc := `{
			"projectName": "payments",
			"dateRange": {},
			"stats": {"totalCommits": 0, "totalPullRequests": 0},
			"contributors": [],
			"modules": [],
			"rankings": {"mostCommits": [
				{"name": "a", "count": 1}, {"name": "b", "count": 1}, {"name": "c", "count": 1},
				{"name": "d", "count": 1}, {"name": "e", "count": 1}, {"name": "f", "count": 1}
			]},
			"highlights": [],
			"milestones": []
		}`
		fieldErrors, err := Validate([]byte(doc))
		require.NoError(t, err)
		assert.NotEmpty(t, fieldErrors)
	})

	t.Run("not json at all", func(t *testing.T) {
		_, err := Validate([]byte(`not a document`))
		assert.Error(t, err)
	})
}
