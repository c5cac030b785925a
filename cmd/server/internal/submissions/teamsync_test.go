package submissions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDedupeMembers(t *testing.T) {
	leader := uuid.New()
	a := uuid.New()
	b := uuid.New()

	t.Run("PreservesOrder", func(t *testing.T) {
		out := DedupeMembers(leader, []uuid.UUID{b, a})

		assert.Equal(t, []uuid.UUID{b, a}, out)
	})

	t.Run("DropsDuplicates", func(t *testing.T) {
		out := DedupeMembers(leader, []uuid.UUID{a, b, a, b})

		assert.Equal(t, []uuid.UUID{a, b}, out)
	})

	t.Run("DropsLeader", func(t *testing.T) {
		out := DedupeMembers(leader, []uuid.UUID{a, leader, b})

		assert.Equal(t, []uuid.UUID{a, b}, out)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, DedupeMembers(leader, nil))
	})
}
