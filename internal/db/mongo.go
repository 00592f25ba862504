package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a Store backed by a MongoDB database.
// The zero value is an unavailable store.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// ConnectMongoDB initializes the database connection. It never fails: when
// the client cannot be created the returned store reports itself unavailable.
// An unreachable server only logs a warning, requests against it fail later.
func ConnectMongoDB(ctx context.Context, uri, dbName string, timeout time.Duration, log logrus.FieldLogger) *MongoStore {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.WithError(err).Warn("MongoDB connection failed, store unavailable")
		return &MongoStore{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.WithError(err).Warn("MongoDB ping failed")
	} else {
		log.WithField("database", dbName).Info("Connected to MongoDB")
	}

	return &MongoStore{client: client, database: client.Database(dbName)}
}

func (s *MongoStore) Available() bool {
	return s != nil && s.database != nil
}

// Disconnect closes the underlying client, if any.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection(name string) (*mongo.Collection, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	return s.database.Collection(name), nil
}

func (s *MongoStore) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapMongoError("insert "+collection, err)
	}
	return IDString(res.InsertedID), nil
}

func (s *MongoStore) GetDocuments(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = bson.M{}
	}

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapMongoError("find "+collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapMongoError("decode "+collection, err)
	}
	normalizeIDs(docs)
	return docs, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	err = coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return wrapMongoError("find one "+collection, err)
	}
	return nil
}

func (s *MongoStore) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return 0, err
	}
	if filter == nil {
		filter = bson.M{}
	}
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapMongoError("count "+collection, err)
	}
	return n, nil
}

func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []any) ([]string, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, wrapMongoError("insert many "+collection, err)
	}
	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, IDString(id))
	}
	return ids, nil
}

func (s *MongoStore) CreateUniqueIndex(ctx context.Context, collection, field string) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return wrapMongoError("create index "+collection+"."+field, err)
	}
	return nil
}

func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	names, err := s.database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, wrapMongoError("list collections", err)
	}
	return names, nil
}

func wrapMongoError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
