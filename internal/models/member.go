package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a market member document. Location is an advisory reference
// (location id or city name), not enforced by the application.
type Member struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone    string             `bson:"phone" json:"phone"`
	Email    string             `bson:"email" json:"email"` // unique
	// Password holds the bcrypt hash, never the plain text.
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
