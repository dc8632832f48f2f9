package models

import "time"

// User represents an application user (mirrored from the Google profile at
// first login). The record is immutable after creation; profile attributes
// are not re-synced on later logins.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	GoogleID  string    `bson:"googleId" json:"googleId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Picture   string    `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
