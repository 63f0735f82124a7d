package dbmodels

import (
	"time"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type DbAdaptiveConfig struct {
	Enabled                bool `db:"enabled"`
	DefaultCooldownSeconds int  `db:"default_cooldown_seconds"`
	AdjustmentTTLSeconds   int  `db:"adjustment_ttl_seconds"`
}

const TABLE_ADAPTIVE_CONFIG = "adaptive_config"

var SelectAdaptiveConfigColumns = utils.ColumnList[DbAdaptiveConfig]()

func AdaptAdaptiveConfig(db DbAdaptiveConfig) (models.AdaptiveConfig, error) {
	return models.AdaptiveConfig{
		Enabled:         db.Enabled,
		DefaultCooldown: time.Duration(db.DefaultCooldownSeconds) * time.Second,
		AdjustmentTTL:   time.Duration(db.AdjustmentTTLSeconds) * time.Second,
	}.WithDefaults(), nil
}
