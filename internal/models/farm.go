package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farm belongs to a member. Member is an advisory id reference.
type Farm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Member    string             `bson:"member,omitempty" json:"member,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
