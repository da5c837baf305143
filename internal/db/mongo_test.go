package db

import (
	"context"
	"os"
	"testing"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	defer os.Unsetenv("MONGO_URI")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestListByOwner_NilCollection(t *testing.T) {
	coll := &MongoMaintenanceCollection{Collection: nil}
	records, err := coll.ListByOwner(context.Background(), "owner-1")
	if err == nil {
		t.Error("expected error when collection is nil")
	}
	if records != nil {
		t.Error("expected nil records on error")
	}
}

func TestHasContact_NilCollection(t *testing.T) {
	coll := &MongoContactCollection{Collection: nil}
	ok, err := coll.HasContact(context.Background(), "session-1")
	if err == nil {
		t.Error("expected error when collection is nil")
	}
	if ok {
		t.Error("expected false on error")
	}
}

func TestRecordContact_NilCollection(t *testing.T) {
	coll := &MongoContactCollection{Collection: nil}
	if err := coll.RecordContact(context.Background(), "session-1", "owner@example.com"); err == nil {
		t.Error("expected error when collection is nil")
	}
}
