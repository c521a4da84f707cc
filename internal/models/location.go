package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a market location document. The slug is derived from the
// city name and is addressable in route paths as an alternative to the id.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	City      string             `bson:"city" json:"city"` // unique
	Slug      string             `bson:"slug,omitempty" json:"slug,omitempty"` // unique, lowercase city with dashes
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
