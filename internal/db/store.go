package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	AccountCollection     = "account"
	TransactionCollection = "transaction"
)

var (
	ErrUnavailable  = errors.New("document store unavailable")
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Store is the document store the services talk to.
// Every method returns ErrUnavailable when Available reports false.
type Store interface {
	Available() bool
	CreateDocument(ctx context.Context, collection string, doc any) (string, error)
	GetDocuments(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []any) ([]string, error)
	CreateUniqueIndex(ctx context.Context, collection, field string) error
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// IDString renders a store-assigned identifier for transport.
func IDString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// normalizeIDs rewrites every _id to its string form in place.
func normalizeIDs(docs []bson.M) {
	for _, d := range docs {
		d["_id"] = IDString(d["_id"])
	}
}
