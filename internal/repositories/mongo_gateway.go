package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGateway maps each collection onto a MongoDB collection of the same name.
// Identifiers are the hex form of the generated ObjectID.
type MongoGateway struct {
	db *mongo.Database
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

func (r *MongoGateway) List(ctx context.Context, collection string) ([]Document, error) {
	docs, err := r.find(ctx, collection, bson.M{})
	if err != nil {
		return nil, remoteErr("list", collection, "", err)
	}
	return docs, nil
}

func (r *MongoGateway) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	docs, err := r.find(ctx, collection, bson.M{field: value})
	if err != nil {
		return nil, remoteErr("query", collection, "", err)
	}
	return docs, nil
}

func (r *MongoGateway) find(ctx context.Context, collection string, filter bson.M) ([]Document, error) {
	// ObjectIDs start with their creation second, so this is insertion order
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		doc := Document{}
		for k, v := range m {
			if k == "_id" {
				continue
			}
			doc[k] = fromBSON(v)
		}
		if oid, ok := m["_id"].(primitive.ObjectID); ok {
			doc[IDField] = oid.Hex()
		} else {
			doc[IDField] = fmt.Sprint(m["_id"])
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *MongoGateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, bson.M(withoutID(doc)))
	if err != nil {
		return "", remoteErr("insert", collection, "", fmt.Errorf("failed to insert document: %w", err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", remoteErr("insert", collection, "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	return oid.Hex(), nil
}

func (r *MongoGateway) Update(ctx context.Context, collection, id string, patch Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return remoteErr("update", collection, id, ErrNotFound)
	}

	res, err := r.db.Collection(collection).UpdateByID(ctx, oid, bson.M{"$set": bson.M(withoutID(patch))})
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to update document: %w", err))
	}
	if res.MatchedCount == 0 {
		return remoteErr("update", collection, id, ErrNotFound)
	}
	return nil
}

func (r *MongoGateway) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return remoteErr("delete", collection, id, fmt.Errorf("failed to delete document: %w", err))
	}
	return nil
}

// fromBSON converts driver-specific values into plain Go values.
func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = fromBSON(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = fromBSON(inner)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}
