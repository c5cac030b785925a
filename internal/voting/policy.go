package voting

import (
	"github.com/hackwave-community/platform-api/internal/types"
)

// Policy is the effective voting configuration for an event after
// merging event type defaults with the event specific override.
type Policy struct {
	// nil means unlimited casts (one per distinct project).
	Quota             *int
	Scope             types.VoteScope
	Mode              types.VoteMode
	AllowPublicVoting bool
}

// Per event type defaults. Unknown types behave like hackathons.
var typeDefaults = map[string]Policy{
	"hackathon": {
		Scope:             types.VoteScopeParticipants,
		Mode:              types.VoteModeFixedQuota,
		AllowPublicVoting: true,
	},
	"community": {
		Scope:             types.VoteScopeAll,
		Mode:              types.VoteModePerProjectLike,
		AllowPublicVoting: true,
	},
	// Judge panels decide these; the public never votes.
	"judged": {
		Scope:             types.VoteScopeParticipants,
		Mode:              types.VoteModeFixedQuota,
		AllowPublicVoting: false,
	},
}

// ResolvePolicy derives the canonical policy. Missing or partial
// override fields fall back to the event type defaults, and the quota
// falls back to the process wide default. PER_PROJECT_LIKE always
// yields a nil quota.
func ResolvePolicy(
	eventType string,
	override *types.EventVotingConfig,
	defaultQuota int,
) Policy {
	policy, ok := typeDefaults[eventType]
	if !ok {
		policy = typeDefaults["hackathon"]
	}

	quota := defaultQuota

	if override != nil {
		if override.Scope != nil {
			policy.Scope = *override.Scope
		}
		if override.Mode != nil {
			policy.Mode = *override.Mode
		}
		if override.Quota != nil {
			quota = *override.Quota
		}
		if override.AllowPublicVoting != nil {
			policy.AllowPublicVoting = *override.AllowPublicVoting
		}
	}

	if policy.Mode == types.VoteModePerProjectLike {
		policy.Quota = nil
	} else {
		policy.Quota = &quota
	}

	return policy
}

// Public is the externally safe projection of a policy.
func (p Policy) Public() types.PublicVotingPolicy {
	return types.PublicVotingPolicy{
		AllowPublicVoting: p.AllowPublicVoting,
		Scope:             p.Scope,
		Quota:             p.Quota,
	}
}

// CanCastVote reports whether a voter with `used` casts in the event
// has budget left.
func (p Policy) CanCastVote(used int) bool {
	return p.Quota == nil || used < *p.Quota
}

// RemainingVotes is nil when unlimited, otherwise the non negative
// remainder of the quota.
func (p Policy) RemainingVotes(used int) *int {
	if p.Quota == nil {
		return nil
	}

	remaining := *p.Quota - used
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
