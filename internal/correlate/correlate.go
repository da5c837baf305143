// Package correlate joins a vehicle's safety bundle with the owner's
// maintenance history and derives the consolidated safety status. Everything
// here is a pure function of its inputs.
package correlate

import (
	"strings"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// Correlate pairs every recall in the bundle with the earliest maintenance
// record that addresses it, or nil when no record qualifies. Only records
// for the active VIN dated at or after the recall report are considered.
//
// The textual component match is a best-effort heuristic: the feeds carry no
// recall ID on service records. A false negative (unmatched but actually
// serviced) is tolerable; a false positive is not, so the signature shortcut
// only applies to records explicitly tagged as recall work.
func Correlate(bundle *models.SafetyBundle, vin string, records []models.MaintenanceRecord) []models.CorrelatedFinding {
	if bundle == nil {
		return nil
	}

	findings := make([]models.CorrelatedFinding, 0, len(bundle.Recalls))
	for _, recall := range bundle.Recalls {
		finding := models.CorrelatedFinding{Recall: recall}
		for i := range records {
			record := &records[i]
			if record.VIN != vin || record.Date.Before(recall.ReportedDate) {
				continue
			}
			if !addresses(recall, record) {
				continue
			}
			if finding.AddressedBy == nil || record.Date.Before(finding.AddressedBy.Date) {
				finding.AddressedBy = record
			}
		}
		findings = append(findings, finding)
	}
	return findings
}

func addresses(recall models.Recall, record *models.MaintenanceRecord) bool {
	if record.MechanicSignature && record.ServiceType == models.ServiceTypeRecallRepair {
		return true
	}
	component := normalizeText(recall.Component)
	if component == "" {
		return false
	}
	return strings.Contains(normalizeText(record.ServiceType), component) ||
		strings.Contains(normalizeText(record.Description), component)
}

// normalizeText lowercases and collapses runs of whitespace so the substring
// match is insensitive to case and spacing.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
