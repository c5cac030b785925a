// Package visibility shapes submission data for the requesting viewer.
// The same stored row renders differently for the public and for
// privileged viewers; nothing privilege gated ever reaches the wire
// for an anonymous request.
package visibility

import (
	"sort"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/internal/types"
)

// Member pairs a roster row with its user record.
type Member struct {
	Membership models.TeamMembership
	User       models.User
}

// Input is everything needed to render one submission.
type Input struct {
	Submission  models.Submission
	Project     models.Project
	Attachments []models.ProjectAttachment
	Team        []Member
	FormFields  []types.SubmissionFormField
	VoteCount   int
	Rank        *int
}

// Shape renders a submission for a viewer. Privileged viewers get the
// full custom field bag and member contact details; everyone else gets
// only fields marked publicly visible and the roster's display names.
func Shape(in Input, privileged bool) types.SubmissionView {
	view := types.SubmissionView{
		ID:            in.Submission.ID.String(),
		EventID:       in.Submission.EventID.String(),
		ProjectID:     in.Submission.ProjectID.String(),
		Title:         in.Submission.Title,
		Tagline:       in.Project.Tagline,
		Description:   in.Submission.Description,
		DemoURL:       in.Project.DemoURL,
		CoverImageURL: in.Project.CoverImageURL,
		Status:        in.Submission.Status,
		VoteCount:     in.VoteCount,
		Rank:          in.Rank,
		Team:          shapeTeam(in.Team, privileged),
		Attachments:   shapeAttachments(in.Attachments),
		Fields:        shapeFields(in.Project.Fields, in.FormFields, privileged),
		CreatedAt:     in.Submission.CreatedAt,
		UpdatedAt:     in.Submission.UpdatedAt,
	}

	return view
}

func shapeTeam(team []Member, privileged bool) []types.TeamMemberView {
	views := make([]types.TeamMemberView, 0, len(team))
	for _, m := range team {
		view := types.TeamMemberView{
			ID:          m.User.ID.String(),
			DisplayName: m.User.DisplayName,
			AvatarURL:   m.User.AvatarURL,
			Role:        string(m.Membership.Role),
		}

		if privileged {
			view.Email = optional(m.User.Email)
			view.Phone = optional(m.User.Phone)
			view.MessagingID = optional(m.User.MessagingID)
			view.Region = optional(m.User.Region)
			view.RoleText = optional(m.User.RoleText)
			view.CurrentWork = optional(m.User.CurrentWork)
		}

		views = append(views, view)
	}

	// Leader first, then members by display name for a stable roster.
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Role != views[j].Role {
			return views[i].Role == string(models.TeamRoleLeader)
		}
		return views[i].DisplayName < views[j].DisplayName
	})

	return views
}

func shapeAttachments(attachments []models.ProjectAttachment) []types.AttachmentView {
	views := make([]types.AttachmentView, 0, len(attachments))
	for _, a := range attachments {
		views = append(views, types.AttachmentView{
			Name:        a.Name,
			URL:         a.URL,
			ContentType: a.ContentType,
			Order:       a.Order,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Order < views[j].Order
	})

	return views
}

// shapeFields projects the stored field bag through the event's form
// schema. Unprivileged viewers only see enabled fields marked publicly
// visible, and only when a value is actually present.
func shapeFields(
	stored map[string]any,
	schema []types.SubmissionFormField,
	privileged bool,
) map[string]any {
	out := map[string]any{}

	if privileged {
		for key, value := range stored {
			out[key] = value
		}
		return out
	}

	for _, field := range schema {
		if !field.Enabled || !field.PublicVisible {
			continue
		}

		value, ok := stored[field.Key]
		if !ok || value == nil {
			continue
		}

		out[field.Key] = value
	}

	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
