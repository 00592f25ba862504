package services

import (
	"context"

	"github.com/arzan03/bssm-backend/internal/db"
	"go.mongodb.org/mongo-driver/bson"
)

// faultyStore wraps a MemoryStore and fails the operations that have an
// error configured.
type faultyStore struct {
	*db.MemoryStore
	countErr  error
	insertErr error
	indexErr  error
	findErr   error
	getErr    error
	listErr   error
	createErr error
}

func newFaultyStore() *faultyStore {
	return &faultyStore{MemoryStore: db.NewMemoryStore()}
}

func (s *faultyStore) CountDocuments(ctx context.Context, c string, f bson.M) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.MemoryStore.CountDocuments(ctx, c, f)
}

func (s *faultyStore) InsertMany(ctx context.Context, c string, docs []any) ([]string, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.MemoryStore.InsertMany(ctx, c, docs)
}

func (s *faultyStore) CreateUniqueIndex(ctx context.Context, c, field string) error {
	if s.indexErr != nil {
		return s.indexErr
	}
	return s.MemoryStore.CreateUniqueIndex(ctx, c, field)
}

func (s *faultyStore) FindOne(ctx context.Context, c string, f bson.M, out any) error {
	if s.findErr != nil {
		return s.findErr
	}
	return s.MemoryStore.FindOne(ctx, c, f, out)
}

func (s *faultyStore) GetDocuments(ctx context.Context, c string, f bson.M, limit int64) ([]bson.M, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MemoryStore.GetDocuments(ctx, c, f, limit)
}

func (s *faultyStore) CreateDocument(ctx context.Context, c string, doc any) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.MemoryStore.CreateDocument(ctx, c, doc)
}

func (s *faultyStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.ListCollectionNames(ctx)
}
