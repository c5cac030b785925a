package types

// AttachmentPayload references an already uploaded file. Upload itself
// happens outside this service.
type AttachmentPayload struct {
	Name        string `json:"name"        validate:"required"`
	URL         string `json:"url"         validate:"required,url"`
	ContentType string `json:"contentType"`
	Order       int    `json:"order"`
}

type SubmissionCreateRequest struct {
	Title               string              `json:"title"       validate:"required,max=200"`
	Tagline             string              `json:"tagline"     validate:"max=300"`
	Description         string              `json:"description"`
	DemoURL             string              `json:"demoUrl"     validate:"omitempty,url"`
	CoverImageURL       string              `json:"coverImageUrl" validate:"omitempty,url"`
	LeaderID            string              `json:"leaderId"    validate:"omitempty,uuid_rfc4122"`
	MemberIDs           []string            `json:"memberIds"   validate:"dive,uuid_rfc4122"`
	Fields              map[string]any      `json:"fields"`
	Attachments         []AttachmentPayload `json:"attachments" validate:"dive"`
	CommunityAuthorized bool                `json:"communityAuthorized"`
}

// SubmissionUpdateRequest carries only the fields the caller wants
// changed; nil means keep the stored value.
type SubmissionUpdateRequest struct {
	Title               *string              `json:"title"       validate:"omitempty,max=200"`
	Tagline             *string              `json:"tagline"     validate:"omitempty,max=300"`
	Description         *string              `json:"description"`
	DemoURL             *string              `json:"demoUrl"     validate:"omitempty,url"`
	CoverImageURL       *string              `json:"coverImageUrl" validate:"omitempty,url"`
	LeaderID            *string              `json:"leaderId"    validate:"omitempty,uuid_rfc4122"`
	MemberIDs           *[]string            `json:"memberIds"   validate:"omitempty,dive,uuid_rfc4122"`
	Fields              *map[string]any      `json:"fields"`
	Attachments         *[]AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
	CommunityAuthorized *bool                `json:"communityAuthorized"`
}

type ReviewRequest struct {
	Decision   SubmissionStatus `json:"decision"   validate:"required,oneof=approved rejected"`
	Note       *string          `json:"note"`
	JudgeScore *int             `json:"judgeScore" validate:"omitempty,min=0,max=100"`
}

// VoteAdjustmentRequest sets the displayed vote count target; the
// stored adjustment is derived from the current ledger count.
type VoteAdjustmentRequest struct {
	VoteCount int `json:"voteCount" validate:"min=0"`
}

type ListQuery struct {
	Sort  string `query:"sort"  validate:"omitempty,oneof=voteCount createdAt name"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"`
}
