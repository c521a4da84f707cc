package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the entities rely on. Email,
// city and slug uniqueness is enforced here, at the database layer.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	_, err := db.Collection("locations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}}, Options: unique},
		// Sparse: locations created without a slug must not collide on null.
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: sparseUnique},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("members").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	})
	return err
}
