package adaptive

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/pure_utils"
	"github.com/sentinelsec/sentinel-backend/repositories"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// RuleSnapshot is an immutable view of the scaling rule set and engine
// config, loaded in one shot. Evaluations read a snapshot through an atomic
// pointer so a refresh never tears a half-updated rule set under them.
type RuleSnapshot struct {
	Triggers []models.ScalingTrigger
	Policies []models.ScalingPolicy
	Config   models.AdaptiveConfig
	LoadedAt time.Time

	policiesById map[uuid.UUID]models.ScalingPolicy
	triggersById map[uuid.UUID]models.ScalingTrigger
}

func NewRuleSnapshot(
	triggers []models.ScalingTrigger,
	policies []models.ScalingPolicy,
	config models.AdaptiveConfig,
	loadedAt time.Time,
) *RuleSnapshot {
	policiesById := make(map[uuid.UUID]models.ScalingPolicy, len(policies))
	for _, policy := range policies {
		policiesById[policy.Id] = policy
	}
	triggersById := make(map[uuid.UUID]models.ScalingTrigger, len(triggers))
	for _, trigger := range triggers {
		triggersById[trigger.Id] = trigger
	}
	return &RuleSnapshot{
		Triggers:     triggers,
		Policies:     policies,
		Config:       config.WithDefaults(),
		LoadedAt:     loadedAt,
		policiesById: policiesById,
		triggersById: triggersById,
	}
}

func (s *RuleSnapshot) PolicyById(id uuid.UUID) (models.ScalingPolicy, bool) {
	policy, ok := s.policiesById[id]
	return policy, ok
}

// CooldownFor returns the effective cooldown of a trigger, falling back to
// the config default when the trigger carries no override.
func (s *RuleSnapshot) CooldownFor(triggerId uuid.UUID) time.Duration {
	trigger, ok := s.triggersById[triggerId]
	if !ok {
		return s.Config.DefaultCooldown
	}
	return pure_utils.PtrValueOrDefault(trigger.Cooldown, s.Config.DefaultCooldown)
}

type snapshotRepository interface {
	ListScalingTriggers(ctx context.Context, exec repositories.Executor) ([]models.ScalingTrigger, error)
	ListScalingPolicies(ctx context.Context, exec repositories.Executor) ([]models.ScalingPolicy, error)
	GetAdaptiveConfig(ctx context.Context, exec repositories.Executor) (models.AdaptiveConfig, error)
}

func loadRuleSnapshot(
	ctx context.Context,
	exec repositories.Executor,
	repository snapshotRepository,
	loadedAt time.Time,
) (*RuleSnapshot, error) {
	triggers, err := repository.ListScalingTriggers(ctx, exec)
	if err != nil {
		return nil, err
	}
	policies, err := repository.ListScalingPolicies(ctx, exec)
	if err != nil {
		return nil, err
	}
	config, err := repository.GetAdaptiveConfig(ctx, exec)
	if err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).DebugContext(ctx, "loaded scaling rule snapshot",
		"triggers", len(triggers),
		"policies", len(policies),
		"enabled", config.Enabled,
	)

	return NewRuleSnapshot(triggers, policies, config, loadedAt), nil
}
