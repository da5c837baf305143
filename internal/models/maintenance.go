package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceTypeRecallRepair tags a maintenance record as work performed
// explicitly for a recall campaign.
const ServiceTypeRecallRepair = "recall_repair"

// MaintenanceRecord is an owner's service record, held by the maintenance
// store and read-only in this subsystem.
type MaintenanceRecord struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID           string             `json:"owner_id" bson:"owner_id"`
	VIN               string             `json:"vin,omitempty" bson:"vin,omitempty"`
	ServiceType       string             `json:"service_type" bson:"service_type"` // "oil_change", "brake_service", "recall_repair", ...
	Description       string             `json:"description" bson:"description"`
	Date              time.Time          `json:"date" bson:"date"`
	Mileage           float64            `json:"mileage" bson:"mileage"`
	Technician        string             `json:"technician" bson:"technician"`
	MechanicSignature bool               `json:"mechanic_signature" bson:"mechanic_signature"`
	Notes             string             `json:"notes" bson:"notes"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
