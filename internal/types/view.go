package types

import "time"

// TeamMemberView is a roster entry as exposed over the wire. Contact
// fields are only populated for privileged viewers.
type TeamMemberView struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	AvatarURL   string  `json:"avatarUrl"`
	Role        string  `json:"role"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	MessagingID *string `json:"messagingId,omitempty"`
	Region      *string `json:"region,omitempty"`
	RoleText    *string `json:"roleText,omitempty"`
	CurrentWork *string `json:"currentWork,omitempty"`
}

type AttachmentView struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Order       int    `json:"order"`
}

// SubmissionView is the privilege shaped projection of a submission.
type SubmissionView struct {
	ID            string           `json:"id"`
	EventID       string           `json:"eventId"`
	ProjectID     string           `json:"projectId"`
	Title         string           `json:"title"`
	Tagline       string           `json:"tagline"`
	Description   string           `json:"description"`
	DemoURL       string           `json:"demoUrl"`
	CoverImageURL string           `json:"coverImageUrl"`
	Status        SubmissionStatus `json:"status"`
	VoteCount     int              `json:"voteCount"`
	Rank          *int             `json:"rank,omitempty"`
	Team          []TeamMemberView `json:"team"`
	Attachments   []AttachmentView `json:"attachments"`
	Fields        map[string]any   `json:"fields"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
