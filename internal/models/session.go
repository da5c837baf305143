package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactRecord stores the contact identifier recorded for a session. A
// lookup is gated on one of these being on file.
type ContactRecord struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID  string             `json:"session_id" bson:"session_id"`
	Identifier string             `json:"identifier" bson:"identifier"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// SessionClaims are the validated claims of a session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Contact   string `json:"contact"`
	Exp       int64  `json:"exp"`
}

// ContactRequest is the body of a record-contact request.
type ContactRequest struct {
	Identifier string `json:"identifier"`
}

// ContactResponse is returned once a contact identifier is on file.
type ContactResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}
