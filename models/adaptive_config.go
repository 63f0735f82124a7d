package models

import "time"

const (
	DefaultCooldown      = 30 * time.Minute
	DefaultAdjustmentTTL = 24 * time.Hour
)

// AdaptiveConfig holds the process-wide tunables of the adaptive scaling
// engine. It is loaded at startup and refreshed together with the rule
// snapshot.
type AdaptiveConfig struct {
	Enabled         bool
	DefaultCooldown time.Duration
	// AdjustmentTTL bounds how long an applied adjustment stays in force
	// before the posture reverts to its baseline.
	AdjustmentTTL time.Duration
}

func (c AdaptiveConfig) WithDefaults() AdaptiveConfig {
	if c.DefaultCooldown <= 0 {
		c.DefaultCooldown = DefaultCooldown
	}
	if c.AdjustmentTTL <= 0 {
		c.AdjustmentTTL = DefaultAdjustmentTTL
	}
	return c
}
