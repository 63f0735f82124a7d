package models

// SecurityMechanism is an adjustable security control. The set is closed:
// adding a mechanism requires a new constant and an entry in
// KnownSecurityMechanisms.
type SecurityMechanism int

const (
	UnknownSecurityMechanism SecurityMechanism = iota
	MechanismAuthFactors
	MechanismSessionTimeout
)

var KnownSecurityMechanisms = []SecurityMechanism{
	MechanismAuthFactors,
	MechanismSessionTimeout,
}

func (m SecurityMechanism) String() string {
	switch m {
	case MechanismAuthFactors:
		return "auth_factors"
	case MechanismSessionTimeout:
		return "session_timeout"
	}
	return "unknown"
}

func SecurityMechanismFrom(s string) SecurityMechanism {
	switch s {
	case "auth_factors":
		return MechanismAuthFactors
	case "session_timeout":
		return MechanismSessionTimeout
	}
	return UnknownSecurityMechanism
}

// SecurityLevel is an ordered strength tier: a higher value is a stricter
// posture. The numeric order is the total order used by comparisons.
type SecurityLevel int

const (
	UnknownSecurityLevel SecurityLevel = iota
	SecurityLevelLow
	SecurityLevelStandard
	SecurityLevelHigh
	SecurityLevelCritical
)

// DefaultSecurityLevel is the baseline for any (user, tenant, mechanism,
// context) without a persisted posture.
const DefaultSecurityLevel = SecurityLevelStandard

func (l SecurityLevel) String() string {
	switch l {
	case SecurityLevelLow:
		return "low"
	case SecurityLevelStandard:
		return "standard"
	case SecurityLevelHigh:
		return "high"
	case SecurityLevelCritical:
		return "critical"
	}
	return "unknown"
}

func SecurityLevelFrom(s string) SecurityLevel {
	switch s {
	case "low":
		return SecurityLevelLow
	case "standard":
		return SecurityLevelStandard
	case "high":
		return SecurityLevelHigh
	case "critical":
		return SecurityLevelCritical
	}
	return UnknownSecurityLevel
}

// SecurityAdjustment is one mechanism transition of an applied decision.
// NewLevel is always different from CurrentLevel when an adjustment is
// emitted: no-op transitions are filtered out by the policy resolver.
type SecurityAdjustment struct {
	Mechanism    SecurityMechanism
	CurrentLevel SecurityLevel
	NewLevel     SecurityLevel
	Reason       string
}
