package models

import "time"

// AnomalySeverity is total-ordered: higher value means more severe.
type AnomalySeverity int

const (
	UnknownAnomalySeverity AnomalySeverity = iota
	AnomalySeverityLow
	AnomalySeverityMedium
	AnomalySeverityHigh
	AnomalySeverityCritical
)

func (s AnomalySeverity) String() string {
	switch s {
	case AnomalySeverityLow:
		return "low"
	case AnomalySeverityMedium:
		return "medium"
	case AnomalySeverityHigh:
		return "high"
	case AnomalySeverityCritical:
		return "critical"
	}
	return "unknown"
}

func AnomalySeverityFrom(s string) AnomalySeverity {
	switch s {
	case "low":
		return AnomalySeverityLow
	case "medium":
		return AnomalySeverityMedium
	case "high":
		return AnomalySeverityHigh
	case "critical":
		return AnomalySeverityCritical
	}
	return UnknownAnomalySeverity
}

// DetectedAnomaly is a flagged irregularity carried alongside the trust
// score. Anomalies never alter the numeric score; they are the sole input
// of anomaly-type scaling triggers.
type DetectedAnomaly struct {
	Type               string
	Severity           AnomalySeverity
	AffectedDimensions []Dimension
	Confidence         float64
	DetectionTime      time.Time
}

func (a DetectedAnomaly) Affects(dimension Dimension) bool {
	for _, d := range a.AffectedDimensions {
		if d == dimension {
			return true
		}
	}
	return false
}
