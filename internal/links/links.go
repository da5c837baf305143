// Package links builds deep links to the safety authority's public records.
// Presentation-only; nothing here touches the network.
package links

import (
	"fmt"
	"net/url"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// Set holds outbound links keyed by record identifier.
type Set struct {
	Recalls        map[string]string `json:"recalls,omitempty"`
	Complaints     map[string]string `json:"complaints,omitempty"`
	Investigations map[string]string `json:"investigations,omitempty"`
}

// Recall links to the public record for a recall campaign.
func Recall(campaignNumber string) string {
	return fmt.Sprintf("https://www.nhtsa.gov/recalls?nhtsaId=%s", url.QueryEscape(campaignNumber))
}

// Complaint links to the public record for a consumer complaint.
func Complaint(odiNumber string) string {
	return fmt.Sprintf("https://www.nhtsa.gov/complaints?odiNumber=%s", url.QueryEscape(odiNumber))
}

// Investigation links to the public record for an open investigation.
func Investigation(actionNumber string) string {
	return fmt.Sprintf("https://www.nhtsa.gov/investigations?actionNumber=%s", url.QueryEscape(actionNumber))
}

// ForBundle builds the link set for every record in a bundle.
func ForBundle(bundle *models.SafetyBundle) Set {
	set := Set{}
	if bundle == nil {
		return set
	}
	if len(bundle.Recalls) > 0 {
		set.Recalls = make(map[string]string, len(bundle.Recalls))
		for _, r := range bundle.Recalls {
			set.Recalls[r.CampaignNumber] = Recall(r.CampaignNumber)
		}
	}
	if len(bundle.Complaints) > 0 {
		set.Complaints = make(map[string]string, len(bundle.Complaints))
		for _, c := range bundle.Complaints {
			set.Complaints[c.ODINumber] = Complaint(c.ODINumber)
		}
	}
	if len(bundle.Investigations) > 0 {
		set.Investigations = make(map[string]string, len(bundle.Investigations))
		for _, i := range bundle.Investigations {
			set.Investigations[i.ActionNumber] = Investigation(i.ActionNumber)
		}
	}
	return set
}
