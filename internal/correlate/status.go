package correlate

import "github.com/ukydev/vehicle-safety/internal/models"

// DeriveStatus classifies the consolidated safety picture. Attention
// dominates clear, which dominates no_data. Complaints are informational and
// never escalate the status on their own.
func DeriveStatus(bundle *models.SafetyBundle, findings []models.CorrelatedFinding) models.SafetyStatus {
	if bundle == nil {
		return models.StatusUnknown
	}
	if bundle.Loading {
		return models.StatusChecking
	}
	for _, f := range findings {
		if f.AddressedBy == nil {
			return models.StatusAttention
		}
	}
	if len(bundle.Investigations) > 0 {
		return models.StatusAttention
	}
	if bundle.AllEmpty() {
		return models.StatusNoData
	}
	return models.StatusClear
}
