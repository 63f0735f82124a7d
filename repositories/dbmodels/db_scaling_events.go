package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type DbScalingEvent struct {
	Id          uuid.UUID       `db:"id"`
	UserId      string          `db:"user_id"`
	TenantId    uuid.UUID       `db:"tenant_id"`
	ContextId   string          `db:"context_id"`
	RegionCode  string          `db:"region_code"`
	TriggerId   uuid.UUID       `db:"trigger_id"`
	PolicyId    uuid.UUID       `db:"policy_id"`
	TrustScore  float64         `db:"trust_score"`
	Direction   string          `db:"direction"`
	Adjustments json.RawMessage `db:"adjustments"`
	EventTime   time.Time       `db:"event_time"`
	ExpiresAt   time.Time       `db:"expires_at"`
}

const TABLE_SCALING_EVENTS = "scaling_events"

var SelectScalingEventColumns = utils.ColumnList[DbScalingEvent]()

type dbSecurityAdjustment struct {
	Mechanism string `json:"mechanism"`
	From      string `json:"from"`
	To        string `json:"to"`
	Reason    string `json:"reason,omitempty"`
}

func AdaptScalingEvent(db DbScalingEvent) (models.ScalingEvent, error) {
	direction := models.ScalingDirectionFrom(db.Direction)
	if direction == models.UnknownScalingDirection {
		return models.ScalingEvent{}, errors.Newf("event %s: unknown direction %q", db.Id, db.Direction)
	}

	var payload []dbSecurityAdjustment
	if err := json.Unmarshal(db.Adjustments, &payload); err != nil {
		return models.ScalingEvent{}, errors.Wrapf(err, "event %s: invalid adjustments payload", db.Id)
	}

	adjustments := make([]models.SecurityAdjustment, len(payload))
	for i, adj := range payload {
		adjustments[i] = models.SecurityAdjustment{
			Mechanism:    models.SecurityMechanismFrom(adj.Mechanism),
			CurrentLevel: models.SecurityLevelFrom(adj.From),
			NewLevel:     models.SecurityLevelFrom(adj.To),
			Reason:       adj.Reason,
		}
	}

	return models.ScalingEvent{
		Id:          db.Id,
		UserId:      db.UserId,
		TenantId:    db.TenantId,
		Context:     models.ScalingContextFromStorage(db.ContextId),
		RegionCode:  db.RegionCode,
		TriggerId:   db.TriggerId,
		PolicyId:    db.PolicyId,
		TrustScore:  db.TrustScore,
		Direction:   direction,
		Adjustments: adjustments,
		EventTime:   db.EventTime,
		ExpiresAt:   db.ExpiresAt,
	}, nil
}

func SerializeAdjustments(adjustments []models.SecurityAdjustment) ([]byte, error) {
	payload := make([]dbSecurityAdjustment, len(adjustments))
	for i, adj := range adjustments {
		payload[i] = dbSecurityAdjustment{
			Mechanism: adj.Mechanism.String(),
			From:      adj.CurrentLevel.String(),
			To:        adj.NewLevel.String(),
			Reason:    adj.Reason,
		}
	}
	return json.Marshal(payload)
}
