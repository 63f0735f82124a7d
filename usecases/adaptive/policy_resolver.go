package adaptive

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
)

// ScalingDecision is the single winning action resolved from a candidate
// set: one policy, one firing trigger, one direction, and the non-trivial
// mechanism transitions to apply.
type ScalingDecision struct {
	PolicyId    uuid.UUID
	TriggerId   uuid.UUID
	Direction   models.ScalingDirection
	Adjustments []models.SecurityAdjustment
}

// ResolvePolicy picks the single winning candidate and materializes its
// adjustments against the caller's current security levels. The resolution
// is deterministic:
//   - the policy with the highest priority wins, ties broken by the
//     lexicographically smallest policy id,
//   - within the winning policy, up beats down, then the smallest trigger
//     id wins,
//   - transitions that would not change the current level are dropped.
//
// Only the winner may act. When its adjustment list is empty after the
// no-op filter the resolution is nil; lower-priority candidates do not get
// a turn in that evaluation.
func ResolvePolicy(
	snapshot *RuleSnapshot,
	candidates []Candidate,
	currentLevels map[models.SecurityMechanism]models.SecurityLevel,
	scoreCategory models.ScoreCategory,
) *ScalingDecision {
	if len(candidates) == 0 {
		return nil
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		return candidateLess(snapshot, ordered[i], ordered[j])
	})

	winner := ordered[0]
	policy, ok := snapshot.PolicyById(winner.PolicyId)
	if !ok {
		return nil
	}
	adjustments := buildAdjustments(policy, winner, currentLevels, scoreCategory)
	if len(adjustments) == 0 {
		return nil
	}
	return &ScalingDecision{
		PolicyId:    winner.PolicyId,
		TriggerId:   winner.TriggerId,
		Direction:   winner.Direction,
		Adjustments: adjustments,
	}
}

func candidateLess(snapshot *RuleSnapshot, a, b Candidate) bool {
	priorityA, priorityB := candidatePriority(snapshot, a), candidatePriority(snapshot, b)
	if priorityA != priorityB {
		return priorityA > priorityB
	}
	if a.PolicyId != b.PolicyId {
		return a.PolicyId.String() < b.PolicyId.String()
	}
	if a.Direction != b.Direction {
		return a.Direction == models.ScalingDirectionUp
	}
	return a.TriggerId.String() < b.TriggerId.String()
}

func candidatePriority(snapshot *RuleSnapshot, c Candidate) int {
	policy, ok := snapshot.PolicyById(c.PolicyId)
	if !ok {
		return 0
	}
	return policy.Priority
}

func buildAdjustments(
	policy models.ScalingPolicy,
	candidate Candidate,
	currentLevels map[models.SecurityMechanism]models.SecurityLevel,
	scoreCategory models.ScoreCategory,
) []models.SecurityAdjustment {
	targets, ok := policy.Adjustments[candidate.Direction]
	if !ok {
		return nil
	}

	adjustments := make([]models.SecurityAdjustment, 0, len(targets))
	// Iterate the closed mechanism list rather than the map, so the output
	// order is stable.
	for _, mechanism := range models.KnownSecurityMechanisms {
		newLevel, ok := targets[mechanism]
		if !ok {
			continue
		}
		currentLevel, ok := currentLevels[mechanism]
		if !ok {
			currentLevel = models.DefaultSecurityLevel
		}
		if newLevel == currentLevel {
			continue
		}
		adjustments = append(adjustments, models.SecurityAdjustment{
			Mechanism:    mechanism,
			CurrentLevel: currentLevel,
			NewLevel:     newLevel,
			Reason: fmt.Sprintf("trust score %s: scaling %s by policy %s",
				scoreCategory, candidate.Direction, policy.Id),
		})
	}
	return adjustments
}
