package models

// CorrelatedFinding pairs a recall with evidence, or lack thereof, that the
// owner had it serviced. AddressedBy is a best-effort signal: the feeds carry
// no join key between recalls and service records, so the match is textual.
type CorrelatedFinding struct {
	Recall      Recall             `json:"recall"`
	AddressedBy *MaintenanceRecord `json:"addressed_by,omitempty"`
}

// SafetyStatus classifies a vehicle's consolidated safety picture.
type SafetyStatus string

const (
	StatusUnknown   SafetyStatus = "unknown"
	StatusChecking  SafetyStatus = "checking"
	StatusNoData    SafetyStatus = "no_data"
	StatusClear     SafetyStatus = "clear"
	StatusAttention SafetyStatus = "attention"
)

// IsValidSafetyStatus checks if a safety status is valid.
func IsValidSafetyStatus(s SafetyStatus) bool {
	switch s {
	case StatusUnknown, StatusChecking, StatusNoData, StatusClear, StatusAttention:
		return true
	default:
		return false
	}
}
