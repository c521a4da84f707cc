// Package store implements a generic document store over a MongoDB
// collection. Each entity gets one Store instance configured with a static
// Spec (collection name, allowed and required fields, optional hash hook)
// instead of a subclassed repository per entity.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Spec is the static per-entity configuration of a Store.
type Spec struct {
	// Collection is the backing collection name.
	Collection string
	// Allowed is the whitelist of writable property names. Any other
	// property in a write payload is rejected with a ValidationError.
	Allowed []string
	// Required lists properties that must be present on insert.
	Required []string
	// HashField, when set, names a property whose value is passed through
	// HashFunc before every write that supplies it (the password field).
	HashField string
	HashFunc  func(string) (string, error)
}

// Store wraps one collection handle and decodes documents into M.
type Store[M any] struct {
	coll    *mongo.Collection
	spec    Spec
	allowed map[string]struct{}
	log     *logrus.Entry
}

// New creates a Store for the given database and spec.
func New[M any](db *mongo.Database, spec Spec) *Store[M] {
	allowed := make(map[string]struct{}, len(spec.Allowed))
	for _, f := range spec.Allowed {
		allowed[f] = struct{}{}
	}
	return &Store[M]{
		coll:    db.Collection(spec.Collection),
		spec:    spec,
		allowed: allowed,
		log:     logrus.WithField("collection", spec.Collection),
	}
}

// Collection exposes the underlying handle for index bootstrap.
func (s *Store[M]) Collection() *mongo.Collection {
	return s.coll
}

// validate checks data against the allowed-field set and, when
// requireAll is set, the required-field list.
func (s *Store[M]) validate(data bson.M, requireAll bool) error {
	for field := range data {
		if _, ok := s.allowed[field]; !ok {
			return &ValidationError{Field: field, Msg: "property is not allowed"}
		}
	}
	if requireAll {
		for _, field := range s.spec.Required {
			if _, ok := data[field]; !ok {
				return &ValidationError{Field: field, Msg: "property is required"}
			}
		}
	}
	return nil
}

// hash applies the configured hash hook to the hash field, if supplied.
func (s *Store[M]) hash(data bson.M) error {
	if s.spec.HashField == "" || s.spec.HashFunc == nil {
		return nil
	}
	raw, ok := data[s.spec.HashField]
	if !ok {
		return nil
	}
	plain, ok := raw.(string)
	if !ok || plain == "" {
		return &ValidationError{Field: s.spec.HashField, Msg: "must be a non-empty string"}
	}
	hashed, err := s.spec.HashFunc(plain)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", s.spec.HashField, err)
	}
	data[s.spec.HashField] = hashed
	return nil
}

func (s *Store[M]) objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document.
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// wrapWrite maps driver duplicate-key failures onto ErrDuplicate.
func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// Get returns all documents matching filter, never a nil slice.
func (s *Store[M]) Get(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]M, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID returns the document with the given hex id, or ErrNotFound.
func (s *Store[M]) GetByID(ctx context.Context, id string) (M, error) {
	var doc M
	oid, err := s.objectID(id)
	if err != nil {
		return doc, err
	}
	return s.GetOne(ctx, bson.M{"_id": oid})
}

// GetOne returns a single document matching filter, or ErrNotFound.
func (s *Store[M]) GetOne(ctx context.Context, filter bson.M) (M, error) {
	var doc M
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return doc, ErrNotFound
	}
	return doc, err
}

// Insert validates data against the field allow-list, hashes the hash field, stamps
// timestamps and creates the document, returning the stored value.
func (s *Store[M]) Insert(ctx context.Context, data bson.M) (M, error) {
	var doc M
	if err := s.validate(data, true); err != nil {
		return doc, err
	}
	if err := s.hash(data); err != nil {
		return doc, err
	}

	now := time.Now()
	insert := bson.M{"createdAt": now, "updatedAt": now}
	for k, v := range data {
		insert[k] = v
	}

	result, err := s.coll.InsertOne(ctx, insert)
	if err != nil {
		return doc, wrapWrite(err)
	}
	s.log.WithField("id", result.InsertedID).Debug("document inserted")
	return s.GetOne(ctx, bson.M{"_id": result.InsertedID})
}

// Update merges data into the document with the given id ($set semantics)
// and returns the updated value, or ErrNotFound.
func (s *Store[M]) Update(ctx context.Context, id string, data bson.M) (M, error) {
	var doc M
	oid, err := s.objectID(id)
	if err != nil {
		return doc, err
	}
	if err := s.validate(data, false); err != nil {
		return doc, err
	}
	if err := s.hash(data); err != nil {
		return doc, err
	}

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range data {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return doc, ErrNotFound
	}
	return doc, wrapWrite(err)
}

// Replace fetches the existing document, overwrites it with the supplied
// fields and persists the result. Read-then-write, not transactional:
// concurrent writers to the same id can lose updates.
func (s *Store[M]) Replace(ctx context.Context, id string, data bson.M) (M, error) {
	var doc M
	oid, err := s.objectID(id)
	if err != nil {
		return doc, err
	}
	return s.replace(ctx, bson.M{"_id": oid}, data)
}

// ReplaceByName is Replace keyed by a unique natural-key filter
// instead of id.
func (s *Store[M]) ReplaceByName(ctx context.Context, filter bson.M, data bson.M) (M, error) {
	return s.replace(ctx, filter, data)
}

func (s *Store[M]) replace(ctx context.Context, filter bson.M, data bson.M) (M, error) {
	var doc M
	if err := s.validate(data, false); err != nil {
		return doc, err
	}
	if err := s.hash(data); err != nil {
		return doc, err
	}

	existing := bson.M{}
	err := s.coll.FindOne(ctx, filter).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, err
	}

	for k, v := range data {
		existing[k] = v
	}
	existing["updatedAt"] = time.Now()
	id := existing["_id"]
	delete(existing, "_id")

	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, existing); err != nil {
		return doc, wrapWrite(err)
	}
	return s.GetOne(ctx, bson.M{"_id": id})
}

// Delete removes the document with the given id and returns the removed
// value, or ErrNotFound.
func (s *Store[M]) Delete(ctx context.Context, id string) (M, error) {
	var doc M
	oid, err := s.objectID(id)
	if err != nil {
		return doc, err
	}
	return s.DeleteByName(ctx, bson.M{"_id": oid})
}

// DeleteByName removes a single document matching the filter and returns
// the removed value, or ErrNotFound.
func (s *Store[M]) DeleteByName(ctx context.Context, filter bson.M) (M, error) {
	var doc M
	err := s.coll.FindOneAndDelete(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return doc, ErrNotFound
	}
	return doc, err
}

// Count returns the number of documents matching filter.
func (s *Store[M]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return s.coll.CountDocuments(ctx, filter)
}

// Paginate returns the requested page of matching documents along with
// paging totals. Pages are 1-based.
func (s *Store[M]) Paginate(ctx context.Context, filter bson.M, page, perPage int64) (*PaginateResult[M], error) {
	if filter == nil {
		filter = bson.M{}
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSkip((page - 1) * perPage).SetLimit(perPage)
	items, err := s.Get(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &PaginateResult[M]{
		Page:       page,
		PerPage:    perPage,
		ItemCount:  int64(len(items)),
		Items:      items,
		Total:      total,
		TotalPages: TotalPages(total, perPage),
	}, nil
}
