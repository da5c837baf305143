package safety

import (
	"context"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// DefaultSourceTimeout bounds each individual feed query so one hung source
// marks itself failed instead of stalling the bundle.
const DefaultSourceTimeout = 12 * time.Second

// Aggregator issues the three feed queries concurrently and merges them into
// a SafetyBundle. Bundles are cached per vehicle key for the session.
type Aggregator struct {
	source  SourceClient
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]*models.SafetyBundle
}

// NewAggregator creates an aggregator over the given source client. The
// per-source timeout comes from SOURCE_TIMEOUT when set.
func NewAggregator(source SourceClient) *Aggregator {
	timeout := DefaultSourceTimeout
	if v := os.Getenv("SOURCE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}
	return &Aggregator{
		source:  source,
		timeout: timeout,
		cache:   make(map[string]*models.SafetyBundle),
	}
}

// FetchBundle queries recalls, complaints and investigations for the vehicle
// in parallel. Each slot settles independently: a failed source marks only
// its own status and never blocks or discards the other two. The returned
// error is non-nil only for a correlated total outage or a canceled context.
func (a *Aggregator) FetchBundle(ctx context.Context, vehicle *models.VehicleInfo, force bool) (*models.SafetyBundle, error) {
	key := vehicle.Key()

	if !force {
		a.mu.Lock()
		cached, ok := a.cache[key.String()]
		a.mu.Unlock()
		if ok {
			log.WithField("key", key.String()).Debug("safety bundle cache hit")
			return cached, nil
		}
	}

	bundle := models.NewPendingBundle()

	var (
		recalls        []models.Recall
		complaints     []models.Complaint
		investigations []models.Investigation
		recallsErr     error
		complaintsErr  error
		investErr      error
	)

	// Workers record their own outcome and return nil so a failing source
	// cannot cancel its siblings through the group context.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()
		recalls, recallsErr = a.source.Recalls(fetchCtx, key)
		return nil
	})
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()
		complaints, complaintsErr = a.source.Complaints(fetchCtx, key)
		return nil
	})
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, a.timeout)
		defer cancel()
		investigations, investErr = a.source.Investigations(fetchCtx, key)
		return nil
	})
	g.Wait()

	// A canceled parent means the VIN this fetch was issued for is no
	// longer active; its results must never be committed or cached.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	bundle.Recalls, bundle.PerSource.Recalls = recalls, settle("recalls", recallsErr)
	bundle.Complaints, bundle.PerSource.Complaints = complaints, settle("complaints", complaintsErr)
	bundle.Investigations, bundle.PerSource.Investigations = investigations, settle("investigations", investErr)
	bundle.Loading = false

	if bundle.AllFailed() {
		return nil, &models.TotalOutageError{Causes: []error{
			&models.SourceFetchError{Source: "recalls", Cause: recallsErr},
			&models.SourceFetchError{Source: "complaints", Cause: complaintsErr},
			&models.SourceFetchError{Source: "investigations", Cause: investErr},
		}}
	}

	a.mu.Lock()
	a.cache[key.String()] = bundle
	a.mu.Unlock()

	log.WithFields(log.Fields{
		"key":            key.String(),
		"recalls":        len(bundle.Recalls),
		"complaints":     len(bundle.Complaints),
		"investigations": len(bundle.Investigations),
	}).Info("safety bundle assembled")

	return bundle, nil
}

// Reset clears the session's bundle cache.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.cache = make(map[string]*models.SafetyBundle)
	a.mu.Unlock()
}

func settle(source string, err error) models.SourceStatus {
	if err != nil {
		log.WithFields(log.Fields{"source": source, "error": err}).Warn("safety source failed")
		return models.StatusFailed
	}
	return models.StatusOK
}
