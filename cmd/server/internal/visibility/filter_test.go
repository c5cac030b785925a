package visibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/types"
)

func shapeInput() Input {
	leaderID := uuid.New()
	memberID := uuid.New()

	return Input{
		Submission: models.Submission{
			Title:       "carbon tracker",
			Description: "tracks carbon",
			Status:      types.SubmissionStatusSubmitted,
		},
		Project: models.Project{
			Tagline: "less CO2",
			Fields: datatypes.JSONMap{
				"repoUrl":   "https://example.com/repo",
				"teamSize":  float64(4),
				"budget":    "classified",
				"straggler": "no schema entry",
			},
		},
		Attachments: []models.ProjectAttachment{
			{Name: "deck", URL: "https://example.com/deck.pdf", Order: 2},
			{Name: "demo", URL: "https://example.com/demo.mp4", Order: 1},
		},
		Team: []Member{
			{
				Membership: models.TeamMembership{Role: models.TeamRoleMember},
				User: models.User{
					Model:       models.Model{ID: memberID},
					DisplayName: "bob",
					Email:       "bob@example.com",
					Phone:       "555-0100",
					Region:      "east",
				},
			},
			{
				Membership: models.TeamMembership{Role: models.TeamRoleLeader},
				User: models.User{
					Model:       models.Model{ID: leaderID},
					DisplayName: "alice",
					Email:       "alice@example.com",
					MessagingID: "alice#42",
				},
			},
		},
		FormFields: []types.SubmissionFormField{
			{Key: "repoUrl", Label: "Repository", Type: types.FieldTypeURL, Enabled: true, PublicVisible: true},
			{Key: "teamSize", Label: "Team size", Type: types.FieldTypeNumber, Enabled: true, PublicVisible: true},
			{Key: "budget", Label: "Budget", Type: types.FieldTypeString, Enabled: true, PublicVisible: false},
			{Key: "retired", Label: "Retired", Type: types.FieldTypeString, Enabled: false, PublicVisible: true},
		},
		VoteCount: 7,
	}
}

func TestShapeUnprivileged(t *testing.T) {
	view := Shape(shapeInput(), false)

	t.Run("ContactFieldsNeverLeak", func(t *testing.T) {
		require.Len(t, view.Team, 2)
		for _, member := range view.Team {
			assert.Nil(t, member.Email)
			assert.Nil(t, member.Phone)
			assert.Nil(t, member.MessagingID)
			assert.Nil(t, member.Region)
			assert.Nil(t, member.RoleText)
			assert.Nil(t, member.CurrentWork)
		}
	})

	t.Run("LeaderFirst", func(t *testing.T) {
		require.Len(t, view.Team, 2)
		assert.Equal(t, "alice", view.Team[0].DisplayName)
		assert.Equal(t, string(models.TeamRoleLeader), view.Team[0].Role)
	})

	t.Run("OnlyPublicEnabledFieldsWithValues", func(t *testing.T) {
		assert.Equal(t, map[string]any{
			"repoUrl":  "https://example.com/repo",
			"teamSize": float64(4),
		}, view.Fields)
	})

	t.Run("AttachmentsSortedByOrder", func(t *testing.T) {
		require.Len(t, view.Attachments, 2)
		assert.Equal(t, "demo", view.Attachments[0].Name)
		assert.Equal(t, "deck", view.Attachments[1].Name)
	})
}

func TestShapePrivileged(t *testing.T) {
	view := Shape(shapeInput(), true)

	t.Run("ContactFieldsPresent", func(t *testing.T) {
		require.Len(t, view.Team, 2)
		leader := view.Team[0]

		require.NotNil(t, leader.Email)
		assert.Equal(t, "alice@example.com", *leader.Email)
		require.NotNil(t, leader.MessagingID)
		assert.Equal(t, "alice#42", *leader.MessagingID)
		// Empty source columns stay nil even for privileged viewers.
		assert.Nil(t, leader.Phone)
	})

	t.Run("FullFieldBag", func(t *testing.T) {
		assert.Equal(t, map[string]any{
			"repoUrl":   "https://example.com/repo",
			"teamSize":  float64(4),
			"budget":    "classified",
			"straggler": "no schema entry",
		}, view.Fields)
	})
}

func TestShapeMissingPublicValue(t *testing.T) {
	in := shapeInput()
	delete(in.Project.Fields, "repoUrl")
	in.Project.Fields["teamSize"] = nil

	view := Shape(in, false)

	assert.Empty(t, view.Fields)
}
