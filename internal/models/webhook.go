package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebHook is a registered subscriber URL for an event tag,
// e.g. "product.soldout".
type WebHook struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	Event     string             `bson:"event" json:"event"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
