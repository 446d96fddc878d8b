package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/errors"
)

// MongoStore persists components in a MongoDB collection.
// Snapshot order is creation time (ties broken by ID), so List is stable
// across restarts and replicas.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// componentDoc wraps a component with the bookkeeping fields the store
// needs but the domain model does not carry.
type componentDoc struct {
	component.Component `bson:",inline"`
	CreatedAt           time.Time `bson:"created_at"`
}

// NewMongoStore connects to MongoDB and returns a store backed by the
// given database and collection. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// List returns all components ordered by creation time, then ID.
func (s *MongoStore) List(ctx context.Context) ([]component.Component, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list components")
	}
	defer cur.Close(ctx)

	var docs []componentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode components")
	}

	out := make([]component.Component, len(docs))
	for i, d := range docs {
		out[i] = d.Component
	}
	return out, nil
}

// Get returns the component with the given ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*component.Component, error) {
	var doc componentDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get component %s", id)
	}
	return &doc.Component, nil
}

// Put upserts a component. The creation timestamp is written once on
// insert so the component keeps its snapshot slot across edits.
func (s *MongoStore) Put(ctx context.Context, c *component.Component) error {
	if err := c.Validate(); err != nil {
		return err
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "category", Value: c.Category},
			{Key: "name", Value: c.Name},
			{Key: "config", Value: c.Config},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "id", Value: c.ID},
			{Key: "created_at", Value: time.Now().UTC()},
		}},
	}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "id", Value: c.ID}}, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put component %s", c.ID)
	}
	return nil
}

// Delete removes a component. Deleting an absent ID returns
// ErrCodeComponentNotFound.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete component %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "disconnect mongodb")
	}
	return nil
}
