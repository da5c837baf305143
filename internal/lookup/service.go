// Package lookup coordinates a VIN safety lookup end to end: gate check,
// normalization, decode, safety-feed aggregation, maintenance correlation
// and status derivation. State is scoped per session: each session owns its
// caches and the active-VIN identity that keeps stale results out of the
// picture.
package lookup

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/alerts"
	"github.com/ukydev/vehicle-safety/internal/correlate"
	"github.com/ukydev/vehicle-safety/internal/db"
	"github.com/ukydev/vehicle-safety/internal/links"
	"github.com/ukydev/vehicle-safety/internal/models"
	"github.com/ukydev/vehicle-safety/internal/vin"
)

// Decoder resolves a normalized VIN to a vehicle identity.
type Decoder interface {
	Decode(ctx context.Context, vin string) (*models.VehicleInfo, error)
}

// Bundler fetches safety bundles per vehicle key, caching them for the
// lifetime of the session that owns it.
type Bundler interface {
	FetchBundle(ctx context.Context, vehicle *models.VehicleInfo, force bool) (*models.SafetyBundle, error)
	Reset()
}

// Report is the consolidated safety picture returned for one lookup.
type Report struct {
	Vehicle  *models.VehicleInfo        `json:"vehicle"`
	Bundle   *models.SafetyBundle       `json:"bundle"`
	Findings []models.CorrelatedFinding `json:"findings"`
	Status   models.SafetyStatus        `json:"status"`
	Links    links.Set                  `json:"links"`
}

// sessionState holds everything scoped to one session: its bundler (and
// with it the bundle cache), decode cache and active-VIN identity. It dies
// on Reset; nothing is process-global.
type sessionState struct {
	bundler      Bundler
	activeVIN    string
	cancelActive context.CancelFunc
	decodeCache  map[string]*models.VehicleInfo
}

// Service runs lookups across sessions.
type Service struct {
	gate       db.ContactCollection
	records    db.MaintenanceCollection
	decoder    Decoder
	newBundler func() Bundler
	publisher  alerts.Publisher

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewService wires a lookup service from its collaborators. newBundler is
// called once per session so each session gets its own bundle cache.
func NewService(gate db.ContactCollection, records db.MaintenanceCollection, decoder Decoder, newBundler func() Bundler, publisher alerts.Publisher) *Service {
	if publisher == nil {
		publisher = alerts.NoopPublisher{}
	}
	return &Service{
		gate:       gate,
		records:    records,
		decoder:    decoder,
		newBundler: newBundler,
		publisher:  publisher,
		sessions:   make(map[string]*sessionState),
	}
}

func (s *Service) state(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{
			bundler:     s.newBundler(),
			decodeCache: make(map[string]*models.VehicleInfo),
		}
		s.sessions[sessionID] = st
	}
	return st
}

// Lookup performs one full safety lookup for the session. Gate and
// validation failures return before any network call is made. If a newer
// lookup replaces the session's active VIN while this one's safety queries
// are in flight, this one's results are discarded and ErrSuperseded is
// returned.
func (s *Service) Lookup(ctx context.Context, sessionID, ownerID, rawVIN string, force bool) (*Report, error) {
	ok, err := s.gate.HasContact(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &models.GateError{Msg: "access not granted"}
	}

	// Clean rather than Normalize: an input with more than 17 significant
	// characters must be rejected, not truncated into somebody else's VIN.
	normalized := vin.Clean(rawVIN)
	if err := vin.Validate(normalized); err != nil {
		return nil, err
	}

	st := s.state(sessionID)

	vehicle, err := s.decodeVehicle(ctx, st, normalized)
	if err != nil {
		return nil, err
	}

	// Becoming the active lookup invalidates any aggregation still in
	// flight, a repeat of the same VIN included. Canceling a context whose
	// fetch already finished is a no-op, so this also releases the cancel
	// func left over from the previous completed lookup.
	s.mu.Lock()
	if st.cancelActive != nil {
		st.cancelActive()
	}
	st.activeVIN = normalized
	fetchCtx, cancel := context.WithCancel(ctx)
	st.cancelActive = cancel
	s.mu.Unlock()

	bundle, err := st.bundler.FetchBundle(fetchCtx, vehicle, force)
	if err != nil {
		if fetchCtx.Err() != nil {
			return nil, models.ErrSuperseded
		}
		return nil, err
	}

	// Commit point: the bundle is attributed to the VIN it was issued for
	// only if that VIN is still the session's active one.
	s.mu.Lock()
	if st.activeVIN != normalized {
		s.mu.Unlock()
		log.WithField("vin", normalized).Info("discarding stale safety bundle")
		return nil, models.ErrSuperseded
	}
	s.mu.Unlock()

	records, err := s.records.ListByOwner(ctx, ownerID)
	if err != nil {
		// Degrade to uncorrelated findings rather than failing the lookup;
		// unmatched recalls read as unaddressed, which errs on the loud side.
		log.WithFields(log.Fields{"owner": ownerID, "error": err}).Warn("maintenance store unavailable")
		records = nil
	}

	findings := correlate.Correlate(bundle, normalized, records)
	status := correlate.DeriveStatus(bundle, findings)

	report := &Report{
		Vehicle:  vehicle,
		Bundle:   bundle,
		Findings: findings,
		Status:   status,
		Links:    links.ForBundle(bundle),
	}

	if status == models.StatusAttention {
		s.publishAlert(ctx, report)
	}

	return report, nil
}

func (s *Service) decodeVehicle(ctx context.Context, st *sessionState, normalized string) (*models.VehicleInfo, error) {
	s.mu.Lock()
	cached, ok := st.decodeCache[normalized]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	vehicle, err := s.decoder.Decode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	st.decodeCache[normalized] = vehicle
	s.mu.Unlock()
	return vehicle, nil
}

func (s *Service) publishAlert(ctx context.Context, report *Report) {
	open := 0
	for _, f := range report.Findings {
		if f.AddressedBy == nil {
			open++
		}
	}
	alert := alerts.Alert{
		VIN:            report.Vehicle.VIN,
		Make:           report.Vehicle.Make,
		Model:          report.Vehicle.Model,
		ModelYear:      report.Vehicle.ModelYear,
		Status:         report.Status,
		OpenRecalls:    open,
		Investigations: len(report.Bundle.Investigations),
		Timestamp:      time.Now(),
	}
	if err := s.publisher.Publish(ctx, alert); err != nil {
		log.WithFields(log.Fields{"vin": alert.VIN, "error": err}).Warn("failed to publish safety alert")
	}
}

// Reset discards the session's caches and active-VIN state, canceling any
// aggregation still in flight.
func (s *Service) Reset(sessionID string) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if ok {
		if st.cancelActive != nil {
			st.cancelActive()
		}
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if ok {
		st.bundler.Reset()
	}
}
