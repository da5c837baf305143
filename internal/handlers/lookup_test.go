package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ukydev/vehicle-safety/internal/lookup"
	"github.com/ukydev/vehicle-safety/internal/middleware"
	"github.com/ukydev/vehicle-safety/internal/models"
)

// MockMaintenanceCollection is a mock implementation of
// db.MaintenanceCollection.
type MockMaintenanceCollection struct {
	mock.Mock
}

func (m *MockMaintenanceCollection) ListByOwner(ctx context.Context, ownerID string) ([]models.MaintenanceRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRecord), args.Error(1)
}

// stubDecoder resolves any complete VIN to a fixed vehicle.
type stubDecoder struct{}

func (stubDecoder) Decode(ctx context.Context, vin string) (*models.VehicleInfo, error) {
	return &models.VehicleInfo{VIN: vin, Make: "HONDA", Model: "Accord", ModelYear: 2003}, nil
}

// stubBundler returns an all-settled, empty bundle.
type stubBundler struct{}

func (stubBundler) FetchBundle(ctx context.Context, vehicle *models.VehicleInfo, force bool) (*models.SafetyBundle, error) {
	return &models.SafetyBundle{
		PerSource: models.PerSourceStatus{
			Recalls:        models.StatusOK,
			Complaints:     models.StatusOK,
			Investigations: models.StatusOK,
		},
	}, nil
}

func (stubBundler) Reset() {}

func serviceWithGate(hasContact bool) *lookup.Service {
	gate := new(MockContactCollection)
	gate.On("HasContact", mock.Anything, mock.Anything).Return(hasContact, nil)
	records := new(MockMaintenanceCollection)
	records.On("ListByOwner", mock.Anything, mock.Anything).Return([]models.MaintenanceRecord{}, nil)
	return lookup.NewService(gate, records, stubDecoder{}, func() lookup.Bundler { return stubBundler{} }, nil)
}

func sessionRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	claims := &models.SessionClaims{SessionID: "abc123", Contact: "owner@example.com"}
	ctx := context.WithValue(req.Context(), middleware.SessionContextKey, claims)
	return req.WithContext(ctx)
}

func TestLookup_Success(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(true))

	req := sessionRequest(http.MethodGet, "/api/lookup?vin=1HGCM82633A004352")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var report lookup.Report
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "1HGCM82633A004352", report.Vehicle.VIN)
	assert.Equal(t, models.StatusNoData, report.Status)
}

func TestLookup_GateErrorIsForbidden(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(false))

	req := sessionRequest(http.MethodGet, "/api/lookup?vin=1HGCM82633A004352")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLookup_IncompleteVINIsBadRequest(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(true))

	req := sessionRequest(http.MethodGet, "/api/lookup?vin=1HGCM82633A00435")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookup_NoSessionContext(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(true))

	req := httptest.NewRequest(http.MethodGet, "/api/lookup?vin=1HGCM82633A004352", nil)
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLookup_MethodNotAllowed(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(true))

	req := sessionRequest(http.MethodPost, "/api/lookup?vin=1HGCM82633A004352")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestReset(t *testing.T) {
	handler := NewLookupHandler(serviceWithGate(true))

	req := sessionRequest(http.MethodPost, "/api/session/reset")
	w := httptest.NewRecorder()
	handler.Reset(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWriteLookupError_Taxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &models.ValidationError{Msg: "incomplete VIN"}, http.StatusBadRequest},
		{"gate", &models.GateError{Msg: "access not granted"}, http.StatusForbidden},
		{"decode", &models.DecodeError{Msg: "unrecognized VIN"}, http.StatusUnprocessableEntity},
		{"total outage", &models.TotalOutageError{}, http.StatusBadGateway},
		{"superseded", models.ErrSuperseded, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeLookupError(w, tt.err)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
