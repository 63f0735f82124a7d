package dbmodels

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type DbSecurityPosture struct {
	UserId        string    `db:"user_id"`
	TenantId      uuid.UUID `db:"tenant_id"`
	Mechanism     string    `db:"mechanism"`
	ContextId     string    `db:"context_id"`
	Level         string    `db:"level"`
	BaselineLevel string    `db:"baseline_level"`
	EventTime     time.Time `db:"event_time"`
	ExpiresAt     time.Time `db:"expires_at"`
}

const TABLE_SECURITY_POSTURES = "security_postures"

var SelectSecurityPostureColumns = utils.ColumnList[DbSecurityPosture]()

func AdaptSecurityPosture(db DbSecurityPosture) (models.SecurityPosture, error) {
	mechanism := models.SecurityMechanismFrom(db.Mechanism)
	if mechanism == models.UnknownSecurityMechanism {
		return models.SecurityPosture{}, errors.Newf("unknown mechanism %q", db.Mechanism)
	}
	level := models.SecurityLevelFrom(db.Level)
	if level == models.UnknownSecurityLevel {
		return models.SecurityPosture{}, errors.Newf("unknown level %q", db.Level)
	}
	baseline := models.SecurityLevelFrom(db.BaselineLevel)
	if baseline == models.UnknownSecurityLevel {
		return models.SecurityPosture{}, errors.Newf("unknown baseline level %q", db.BaselineLevel)
	}

	return models.SecurityPosture{
		UserId:        db.UserId,
		TenantId:      db.TenantId,
		Mechanism:     mechanism,
		Context:       models.ScalingContextFromStorage(db.ContextId),
		Level:         level,
		BaselineLevel: baseline,
		EventTime:     db.EventTime,
		ExpiresAt:     db.ExpiresAt,
	}, nil
}
