// Package service is a thin pass-through over the store layer. It exists
// to decouple handlers from store internals and adds two read filters.
package service

import (
	"context"

	"froot-boot-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

// Service delegates to the paired Store. No business logic lives here.
type Service[M any] struct {
	store *store.Store[M]
}

// New creates a Service over the given store.
func New[M any](s *store.Store[M]) *Service[M] {
	return &Service[M]{store: s}
}

func (s *Service[M]) Get(ctx context.Context) ([]M, error) {
	return s.store.Get(ctx, nil)
}

func (s *Service[M]) GetByID(ctx context.Context, id string) (M, error) {
	return s.store.GetByID(ctx, id)
}

// GetResourceByFilter returns a single document matching the filter.
func (s *Service[M]) GetResourceByFilter(ctx context.Context, filter bson.M) (M, error) {
	return s.store.GetOne(ctx, filter)
}

// GetAllResourcesByFilter returns all documents matching the filter.
func (s *Service[M]) GetAllResourcesByFilter(ctx context.Context, filter bson.M) ([]M, error) {
	return s.store.Get(ctx, filter)
}

func (s *Service[M]) Insert(ctx context.Context, data bson.M) (M, error) {
	return s.store.Insert(ctx, data)
}

func (s *Service[M]) Update(ctx context.Context, id string, data bson.M) (M, error) {
	return s.store.Update(ctx, id, data)
}

func (s *Service[M]) Replace(ctx context.Context, id string, data bson.M) (M, error) {
	return s.store.Replace(ctx, id, data)
}

func (s *Service[M]) ReplaceByName(ctx context.Context, filter bson.M, data bson.M) (M, error) {
	return s.store.ReplaceByName(ctx, filter, data)
}

func (s *Service[M]) Delete(ctx context.Context, id string) (M, error) {
	return s.store.Delete(ctx, id)
}

func (s *Service[M]) DeleteByName(ctx context.Context, filter bson.M) (M, error) {
	return s.store.DeleteByName(ctx, filter)
}

func (s *Service[M]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.store.Count(ctx, filter)
}

// Paginate returns one page of documents matching the filter.
func (s *Service[M]) Paginate(ctx context.Context, filter bson.M, page, perPage int64) (*store.PaginateResult[M], error) {
	return s.store.Paginate(ctx, filter, page, perPage)
}
