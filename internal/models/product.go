package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is produced by a farm. Producer is an advisory farm id reference.
// Setting Soldout to true triggers the product.soldout webhook event.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Producer  string             `bson:"producer" json:"producer"`
	Price     float64            `bson:"price" json:"price"`
	Soldout   bool               `bson:"soldout" json:"soldout"`
	PhotoURL  string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
