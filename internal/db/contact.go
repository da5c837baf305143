package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// MongoContactCollection wraps the MongoDB collection backing the access
// gate.
type MongoContactCollection struct {
	Collection *mongo.Collection
}

// HasContact reports whether a contact identifier is on file for the
// session.
func (c *MongoContactCollection) HasContact(ctx context.Context, sessionID string) (bool, error) {
	if c.Collection == nil {
		return false, fmt.Errorf("mongo collection is nil")
	}

	err := c.Collection.FindOne(ctx, bson.M{"session_id": sessionID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordContact stores (or refreshes) the contact identifier for a session.
func (c *MongoContactCollection) RecordContact(ctx context.Context, sessionID, identifier string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	record := models.ContactRecord{
		SessionID:  sessionID,
		Identifier: identifier,
		CreatedAt:  time.Now(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := c.Collection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": record},
		opts,
	)
	return err
}
