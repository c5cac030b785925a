package types

// VoteScope is the population allowed to vote in an event.
type VoteScope string

const (
	VoteScopeAll          VoteScope = "ALL"
	VoteScopeRegistered   VoteScope = "REGISTERED"
	VoteScopeParticipants VoteScope = "PARTICIPANTS"
)

// VoteMode selects how casts are budgeted.
type VoteMode string

const (
	// A fixed number of casts per voter per event.
	VoteModeFixedQuota VoteMode = "FIXED_QUOTA"
	// One cast per distinct project, no event wide budget.
	VoteModePerProjectLike VoteMode = "PER_PROJECT_LIKE"
)

// EventVotingConfig is the event specific override stored on the event
// row. Any field may be absent; the policy resolver fills defaults.
type EventVotingConfig struct {
	Scope             *VoteScope `json:"scope,omitempty"`
	Mode              *VoteMode  `json:"mode,omitempty"`
	Quota             *int       `json:"quota,omitempty"`
	AllowPublicVoting *bool      `json:"allowPublicVoting,omitempty"`
}

// VoteCode names the outcome of an eligibility check. These are normal
// return values, not Go errors.
type VoteCode string

const (
	VoteCodeOwnProject           VoteCode = "OWN_PROJECT"
	VoteCodeVotingClosed         VoteCode = "VOTING_CLOSED"
	VoteCodeVotingEnded          VoteCode = "VOTING_ENDED"
	VoteCodePublicVotingDisabled VoteCode = "PUBLIC_VOTING_DISABLED"
	VoteCodeNotEligible          VoteCode = "NOT_ELIGIBLE"
	VoteCodeAlreadyVoted         VoteCode = "ALREADY_VOTED"
	VoteCodeNoVotesLeft          VoteCode = "NO_VOTES_LEFT"
	VoteCodeNotVoted             VoteCode = "NOT_VOTED"
)

// VoteResult is the success payload for cast and revoke.
type VoteResult struct {
	// Remaining casts for this voter in the event, nil when unlimited.
	RemainingVotes *int `json:"remainingVotes"`
	VoteCount      int  `json:"voteCount"`
	Voted          bool `json:"voted"`
}

// PublicVotingPolicy is the externally safe projection of a resolved
// policy.
type PublicVotingPolicy struct {
	Quota             *int      `json:"quota"`
	Scope             VoteScope `json:"scope"`
	AllowPublicVoting bool      `json:"allowPublicVoting"`
}
