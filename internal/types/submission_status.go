package types

type SubmissionStatus string

const (
	SubmissionStatusSubmitted   SubmissionStatus = "submitted"    // Received, awaiting review
	SubmissionStatusUnderReview SubmissionStatus = "under_review" // Picked up by an event administrator
	SubmissionStatusApproved    SubmissionStatus = "approved"     // Cleared for the public gallery
	SubmissionStatusRejected    SubmissionStatus = "rejected"     // Declined with an optional note
	SubmissionStatusAwarded     SubmissionStatus = "awarded"      // Selected as a winner
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusSubmitted,
		SubmissionStatusUnderReview,
		SubmissionStatusApproved,
		SubmissionStatusRejected,
		SubmissionStatusAwarded:
		return true
	default:
		return false
	}
}
