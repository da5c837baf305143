package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// MongoMaintenanceCollection wraps the MongoDB collection holding the
// owner's maintenance records.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// mongoMaintenanceCursor wraps a MongoDB cursor for maintenance queries.
type mongoMaintenanceCursor struct {
	cursor *mongo.Cursor
}

// All retrieves all results from the cursor.
func (m *mongoMaintenanceCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

// Close closes the cursor.
func (m *mongoMaintenanceCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}

// ListByOwner returns the owner's maintenance records, most recent first.
func (c *MongoMaintenanceCollection) ListByOwner(ctx context.Context, ownerID string) ([]models.MaintenanceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	wrapped := &mongoMaintenanceCursor{cursor: cursor}
	defer wrapped.Close(ctx)

	var records []models.MaintenanceRecord
	if err := wrapped.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
