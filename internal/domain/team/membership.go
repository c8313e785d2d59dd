package team

import (
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// NormalizeBatch validates a bulk membership request and returns the IDs
// trimmed and deduplicated in input order. An empty batch is a validation
// failure; a batch longer than domain.MaxBatchSize is rejected outright,
// before any deduplication.
func NormalizeBatch(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, domain.Invalid(domain.ReasonMissingField, "user_ids", domain.MsgRequired)
	}
	if len(ids) > domain.MaxBatchSize {
		return nil, domain.LimitExceeded(domain.ReasonTooMany,
			"at most %d user IDs per request, got %d", domain.MaxBatchSize, len(ids))
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, domain.Invalid(domain.ReasonInvalidUserID, "user_ids", "must not contain empty IDs")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// Newcomers returns the candidates that are not already members.
func (t *Team) Newcomers(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if !t.IsMember(id) {
			out = append(out, id)
		}
	}
	return out
}

// CheckCapacity rejects adding n new members when the resulting member count
// would exceed domain.MaxTeamMembers.
func (t *Team) CheckCapacity(n int) error {
	if total := len(t.MemberIDs) + n; total > domain.MaxTeamMembers {
		return domain.LimitExceeded(domain.ReasonMemberCapExceeded,
			"team %s would have %d members, maximum is %d", t.ID, total, domain.MaxTeamMembers)
	}
	return nil
}

// CheckRemovable rejects removing the admin, who must stay a member.
func (t *Team) CheckRemovable(ids []string) error {
	for _, id := range ids {
		if id == t.AdminID {
			return domain.Invalid(domain.ReasonInvalidUserID, "user_ids", "cannot remove the team admin "+id)
		}
	}
	return nil
}
