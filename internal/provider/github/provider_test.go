package github

import (
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(login, state string) *github.PullRequestReview {
	return &github.PullRequestReview{
		State: github.String(state),
		User:  &github.User{Login: github.String(login)},
	}
}

func TestReviewVote(t *testing.T) {
	tests := []struct {
		state    string
		expected int
	}{
		{state: "APPROVED", expected: model.VoteApproved},
		{state: "CHANGES_REQUESTED", expected: model.VoteRejected},
		{state: "COMMENTED", expected: model.VoteNone},
		{state: "DISMISSED", expected: model.VoteNone},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.expected, reviewVote(tt.state))
		})
	}
}

func TestConvertReviews(t *testing.T) {
	t.Run("one entry per reviewer with their vote", func(t *testing.T) {
		reviewers := convertReviews([]*github.PullRequestReview{
			review("alice", "APPROVED"),
			review("bob", "CHANGES_REQUESTED"),
		})
		assert.Equal(t, []model.Reviewer{
			{Name: "alice", Vote: model.VoteApproved},
			{Name: "bob", Vote: model.VoteRejected},
		}, reviewers)
	})

	t.Run("later verdict overrides an earlier one", func(t *testing.T) {
		reviewers := convertReviews([]*github.PullRequestReview{
			review("alice", "CHANGES_REQUESTED"),
			review("alice", "APPROVED"),
		})
		require.Len(t, reviewers, 1)
		assert.Equal(t, model.VoteApproved, reviewers[0].Vote)
	})

	t.Run("comment does not reset a standing verdict", func(t *testing.T) {
		reviewers := convertReviews([]*github.PullRequestReview{
			review("alice", "APPROVED"),
			review("alice", "COMMENTED"),
		})
		require.Len(t, reviewers, 1)
		assert.Equal(t, model.VoteApproved, reviewers[0].Vote)
	})

	t.Run("pending drafts are skipped", func(t *testing.T) {
		reviewers := convertReviews([]*github.PullRequestReview{
			review("alice", "PENDING"),
		})
		assert.Empty(t, reviewers)
	})

	t.Run("profile name preferred over login", func(t *testing.T) {
		named := &github.PullRequestReview{
			State: github.String("APPROVED"),
			User:  &github.User{Login: github.String("adoe"), Name: github.String("Alice Doe")},
		}
		reviewers := convertReviews([]*github.PullRequestReview{named})
		require.Len(t, reviewers, 1)
		assert.Equal(t, "Alice Doe", reviewers[0].Name)
	})
}
