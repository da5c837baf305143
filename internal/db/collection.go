package db

import (
	"context"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// MaintenanceCollection is the read-only view of the owner's maintenance
// record store. The records themselves belong to the surrounding product.
type MaintenanceCollection interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.MaintenanceRecord, error)
}

// ContactCollection is the access-gate store: a lookup is permitted only for
// sessions with a contact identifier on file.
type ContactCollection interface {
	HasContact(ctx context.Context, sessionID string) (bool, error)
	RecordContact(ctx context.Context, sessionID, identifier string) error
}

// MaintenanceCursor defines the interface for maintenance cursor operations.
type MaintenanceCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
