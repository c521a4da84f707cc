package database

import (
	"context"

	"froot-boot-api-server/internal/hal"
	"froot-boot-api-server/internal/store"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedSampleData loads a handful of development locations and members.
// Seeding is skipped when the locations collection already has documents.
func SeedSampleData(ctx context.Context, db *mongo.Database) error {
	log := logrus.WithField("component", "seeder")

	count, err := db.Collection("locations").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("sample data already present, seeding skipped")
		return nil
	}
	log.Info("seeding sample data")

	locations := store.Locations(db)
	for _, city := range []string{"Tulum", "Veracruz", "Holbox", "Bacalar"} {
		if _, err := locations.Insert(ctx, bson.M{"city": city, "slug": hal.Slug(city)}); err != nil {
			return err
		}
	}

	members := store.Members(db)
	sample := []bson.M{
		{"name": "Member1", "location": "tulum", "phone": "12345678", "email": "Member1@email.com", "password": "member1password"},
		{"name": "Member2", "location": "tulum", "phone": "12345678", "email": "Member2@email.com", "password": "member2password"},
		{"name": "Member3", "location": "holbox", "phone": "12345678", "email": "Member3@email.com", "password": "member3password"},
		{"name": "Member4", "location": "bacalar", "phone": "12345678", "email": "Member4@email.com", "password": "member4password"},
	}
	for _, m := range sample {
		if _, err := members.Insert(ctx, m); err != nil {
			return err
		}
	}

	log.Info("sample data seeded")
	return nil
}
