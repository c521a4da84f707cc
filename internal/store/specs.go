package store

import (
	"froot-boot-api-server/internal/auth"
	"froot-boot-api-server/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Per-entity store constructors. The allowed-field sets mirror the entity
// schemas minus internal and generated fields.

func Locations(db *mongo.Database) *Store[models.Location] {
	return New[models.Location](db, Spec{
		Collection: "locations",
		Allowed:    []string{"city", "slug"},
		Required:   []string{"city"},
	})
}

func Members(db *mongo.Database) *Store[models.Member] {
	return New[models.Member](db, Spec{
		Collection: "members",
		Allowed:    []string{"name", "location", "phone", "email", "password"},
		Required:   []string{"name", "phone", "email", "password"},
		HashField:  "password",
		HashFunc:   auth.HashPassword,
	})
}

func Farms(db *mongo.Database) *Store[models.Farm] {
	return New[models.Farm](db, Spec{
		Collection: "farms",
		Allowed:    []string{"name", "member"},
		Required:   []string{"name"},
	})
}

func Products(db *mongo.Database) *Store[models.Product] {
	return New[models.Product](db, Spec{
		Collection: "products",
		Allowed:    []string{"name", "producer", "price", "soldout", "photoUrl"},
		Required:   []string{"name", "producer", "price", "soldout"},
	})
}

func WebHooks(db *mongo.Database) *Store[models.WebHook] {
	return New[models.WebHook](db, Spec{
		Collection: "webhooks",
		Allowed:    []string{"url", "event"},
		Required:   []string{"url", "event"},
	})
}
