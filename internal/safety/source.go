// Package safety aggregates the three external safety feeds (recalls,
// complaints, investigations) into one bundle per vehicle.
package safety

import (
	"context"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// SourceClient queries the three safety feeds, each keyed by vehicle model
// attributes rather than by VIN.
type SourceClient interface {
	Recalls(ctx context.Context, key models.VehicleKey) ([]models.Recall, error)
	Complaints(ctx context.Context, key models.VehicleKey) ([]models.Complaint, error)
	Investigations(ctx context.Context, key models.VehicleKey) ([]models.Investigation, error)
}
