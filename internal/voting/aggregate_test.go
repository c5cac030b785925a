package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hackwave-community/platform-api/internal/models"
)

func TestEffectiveCount(t *testing.T) {
	t.Run("NoAdjustment", func(t *testing.T) {
		assert.Equal(t, 4, EffectiveCount(4, 0))
	})

	t.Run("PositiveAdjustment", func(t *testing.T) {
		assert.Equal(t, 7, EffectiveCount(4, 3))
	})

	t.Run("NegativeAdjustment", func(t *testing.T) {
		assert.Equal(t, 1, EffectiveCount(4, -3))
	})

	t.Run("FloorsAtZero", func(t *testing.T) {
		assert.Equal(t, 0, EffectiveCount(1, -2))
	})
}

func TestAdjustment(t *testing.T) {
	t.Run("AbsentIsZero", func(t *testing.T) {
		project := models.Project{VoteAdjustment: models.NewNull[int64](nil)}

		assert.Equal(t, int64(0), Adjustment(&project))
	})

	t.Run("Stored", func(t *testing.T) {
		project := models.Project{VoteAdjustment: models.NewNullFromData(int64(-5))}

		assert.Equal(t, int64(-5), Adjustment(&project))
	})
}

func TestSetAdjustmentTarget(t *testing.T) {
	t.Run("TargetAboveLedger", func(t *testing.T) {
		var project models.Project
		SetAdjustmentTarget(&project, 10, 7)

		assert.True(t, project.VoteAdjustment.Valid)
		assert.Equal(t, int64(3), project.VoteAdjustment.V)
	})

	t.Run("TargetBelowLedger", func(t *testing.T) {
		var project models.Project
		SetAdjustmentTarget(&project, 5, 7)

		assert.True(t, project.VoteAdjustment.Valid)
		assert.Equal(t, int64(-2), project.VoteAdjustment.V)
	})

	t.Run("ExactMatchClearsColumn", func(t *testing.T) {
		project := models.Project{VoteAdjustment: models.NewNullFromData(int64(4))}
		SetAdjustmentTarget(&project, 7, 7)

		assert.False(t, project.VoteAdjustment.Valid)
	})

	t.Run("NegativeTargetClampsToZero", func(t *testing.T) {
		var project models.Project
		SetAdjustmentTarget(&project, -3, 2)

		assert.True(t, project.VoteAdjustment.Valid)
		assert.Equal(t, int64(-2), project.VoteAdjustment.V)
	})
}

func rankedFixture() []Ranked {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return []Ranked{
		{
			Submission: models.Submission{Model: models.Model{CreatedAt: base}},
			Project:    models.Project{Title: "carbon tracker"},
			VoteCount:  3,
		},
		{
			Submission: models.Submission{Model: models.Model{CreatedAt: base.Add(time.Hour)}},
			Project:    models.Project{Title: "alpha bot"},
			VoteCount:  5,
		},
		{
			Submission: models.Submission{Model: models.Model{CreatedAt: base.Add(2 * time.Hour)}},
			Project:    models.Project{Title: "beacon"},
			VoteCount:  3,
		},
	}
}

func titles(items []Ranked) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Project.Title
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("VoteCountDesc", func(t *testing.T) {
		items := rankedFixture()
		Rank(items, SortVoteCount, OrderDesc)

		assert.Equal(t, []string{"alpha bot", "carbon tracker", "beacon"}, titles(items))
	})

	t.Run("VoteCountAsc", func(t *testing.T) {
		items := rankedFixture()
		Rank(items, SortVoteCount, OrderAsc)

		assert.Equal(t, []string{"carbon tracker", "beacon", "alpha bot"}, titles(items))
	})

	t.Run("TiesKeepInputOrderBothDirections", func(t *testing.T) {
		asc := rankedFixture()
		Rank(asc, SortVoteCount, OrderAsc)
		desc := rankedFixture()
		Rank(desc, SortVoteCount, OrderDesc)

		// carbon tracker precedes beacon in the input and both hold 3
		// votes, so it stays first among the tie in either direction.
		assert.Equal(t, []string{"carbon tracker", "beacon"}, titles(asc)[:2])
		assert.Equal(t, []string{"carbon tracker", "beacon"}, titles(desc)[1:])
	})

	t.Run("Name", func(t *testing.T) {
		items := rankedFixture()
		Rank(items, SortName, OrderAsc)

		assert.Equal(t, []string{"alpha bot", "beacon", "carbon tracker"}, titles(items))
	})

	t.Run("CreatedAtDesc", func(t *testing.T) {
		items := rankedFixture()
		Rank(items, SortCreatedAt, OrderDesc)

		assert.Equal(t, []string{"beacon", "alpha bot", "carbon tracker"}, titles(items))
	})

	t.Run("UnknownKeyKeepsOrder", func(t *testing.T) {
		items := rankedFixture()
		Rank(items, "bogus", OrderDesc)

		assert.Equal(t, titles(rankedFixture()), titles(items))
	})
}
