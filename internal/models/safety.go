package models

import "time"

// Recall is a government-issued safety campaign record. The system never
// mutates recalls, only stores and displays them.
type Recall struct {
	ID             string    `json:"id" bson:"id"`
	CampaignNumber string    `json:"campaign_number" bson:"campaign_number"`
	Component      string    `json:"component" bson:"component"`
	Summary        string    `json:"summary" bson:"summary"`
	Consequence    string    `json:"consequence,omitempty" bson:"consequence,omitempty"`
	Remedy         string    `json:"remedy" bson:"remedy"`
	ReportedDate   time.Time `json:"reported_date" bson:"reported_date"`
	Notes          string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Complaint is a consumer-filed report identified by an ODI number.
// Complaints are informational and never escalate the safety status alone.
type Complaint struct {
	ID          string    `json:"id" bson:"id"`
	ODINumber   string    `json:"odi_number" bson:"odi_number"`
	Component   string    `json:"component" bson:"component"`
	Summary     string    `json:"summary" bson:"summary"`
	DateAdded   time.Time `json:"date_added" bson:"date_added"`
	FailureDate time.Time `json:"failure_date" bson:"failure_date"`
}

// Investigation is an open safety-authority inquiry into a potential defect
// pattern that has not yet become a recall.
type Investigation struct {
	ID                   string    `json:"id" bson:"id"`
	ActionNumber         string    `json:"action_number" bson:"action_number"`
	InvestigationType    string    `json:"investigation_type" bson:"investigation_type"`
	ComponentDescription string    `json:"component_description" bson:"component_description"`
	Summary              string    `json:"summary" bson:"summary"`
	OpenDate             time.Time `json:"open_date" bson:"open_date"`
}

// SourceStatus tracks the settlement state of one safety feed query.
type SourceStatus string

const (
	StatusPending SourceStatus = "pending"
	StatusOK      SourceStatus = "ok"
	StatusFailed  SourceStatus = "failed"
)

// IsValidSourceStatus checks if a source status is valid.
func IsValidSourceStatus(s SourceStatus) bool {
	switch s {
	case StatusPending, StatusOK, StatusFailed:
		return true
	default:
		return false
	}
}

// PerSourceStatus holds one settlement slot per safety feed.
type PerSourceStatus struct {
	Recalls        SourceStatus `json:"recalls"`
	Complaints     SourceStatus `json:"complaints"`
	Investigations SourceStatus `json:"investigations"`
}

// SafetyBundle is the merged result of querying all three safety feeds for
// one vehicle. It exists only while a VehicleInfo is active and is discarded
// when the VIN changes or the lookup is cleared.
type SafetyBundle struct {
	Recalls        []Recall        `json:"recalls"`
	Complaints     []Complaint     `json:"complaints"`
	Investigations []Investigation `json:"investigations"`
	PerSource      PerSourceStatus `json:"per_source_status"`

	// Loading is true only while the feed queries have not all settled.
	Loading bool `json:"is_loading"`
}

// NewPendingBundle returns a bundle with all three slots pending.
func NewPendingBundle() *SafetyBundle {
	return &SafetyBundle{
		PerSource: PerSourceStatus{
			Recalls:        StatusPending,
			Complaints:     StatusPending,
			Investigations: StatusPending,
		},
		Loading: true,
	}
}

// AllFailed reports a correlated total outage across the three feeds.
func (b *SafetyBundle) AllFailed() bool {
	return b.PerSource.Recalls == StatusFailed &&
		b.PerSource.Complaints == StatusFailed &&
		b.PerSource.Investigations == StatusFailed
}

// AllEmpty reports that every feed settled successfully with no records.
func (b *SafetyBundle) AllEmpty() bool {
	return b.PerSource.Recalls == StatusOK &&
		b.PerSource.Complaints == StatusOK &&
		b.PerSource.Investigations == StatusOK &&
		len(b.Recalls) == 0 && len(b.Complaints) == 0 && len(b.Investigations) == 0
}
