package db

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process memory. Documents go through a
// bson round trip on the way in and out, so callers see the same shapes a
// MongoStore would give them.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	unique      map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]bson.M),
		unique:      make(map[string][]string),
	}
}

func (s *MemoryStore) Available() bool { return s != nil }

func (s *MemoryStore) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	ids, err := s.InsertMany(ctx, collection, []any{doc})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (s *MemoryStore) GetDocuments(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []bson.M{}
	for _, stored := range s.collections[collection] {
		if limit > 0 && int64(len(docs)) >= limit {
			break
		}
		if !matches(stored, filter) {
			continue
		}
		cp, err := toDocument(stored)
		if err != nil {
			return nil, err
		}
		docs = append(docs, cp)
	}
	normalizeIDs(docs)
	return docs, nil
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.collections[collection] {
		if !matches(stored, filter) {
			continue
		}
		raw, err := bson.Marshal(stored)
		if err != nil {
			return fmt.Errorf("find one %s: %w", collection, err)
		}
		return bson.Unmarshal(raw, out)
	}
	return ErrNotFound
}

func (s *MemoryStore) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, stored := range s.collections[collection] {
		if matches(stored, filter) {
			n++
		}
	}
	return n, nil
}

// InsertMany inserts all documents or none of them.
func (s *MemoryStore) InsertMany(ctx context.Context, collection string, docs []any) ([]string, error) {
	prepared := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		d, err := toDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("insert %s: %w", collection, err)
		}
		if _, ok := d["_id"]; !ok {
			d["_id"] = primitive.NewObjectID()
		}
		prepared = append(prepared, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.collections[collection]
	for i, d := range prepared {
		for _, field := range append([]string{"_id"}, s.unique[collection]...) {
			if conflicts(field, d, existing) || conflicts(field, d, prepared[:i]) {
				return nil, fmt.Errorf("insert %s: %w on %s", collection, ErrDuplicateKey, field)
			}
		}
	}

	ids := make([]string, 0, len(prepared))
	for _, d := range prepared {
		ids = append(ids, IDString(d["_id"]))
	}
	s.collections[collection] = append(existing, prepared...)
	return ids, nil
}

func (s *MemoryStore) CreateUniqueIndex(ctx context.Context, collection, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.unique[collection] {
		if f == field {
			return nil
		}
	}
	docs := s.collections[collection]
	for i, d := range docs {
		if conflicts(field, d, docs[:i]) {
			return fmt.Errorf("create index %s.%s: %w", collection, field, ErrDuplicateKey)
		}
	}
	s.unique[collection] = append(s.unique[collection], field)
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = nil
	}
	return nil
}

func (s *MemoryStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// matches reports whether every filter field equals the document's field.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func conflicts(field string, doc bson.M, others []bson.M) bool {
	v, ok := doc[field]
	if !ok {
		return false
	}
	for _, o := range others {
		if ov, ok := o[field]; ok && reflect.DeepEqual(ov, v) {
			return true
		}
	}
	return false
}
