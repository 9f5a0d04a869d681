package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Meta is the index entry for a stored report.
type Meta struct {
	Key       string    `bson:"key" json:"key"`
	Firm      string    `bson:"firm,omitempty" json:"firm,omitempty"`
	Items     int       `bson:"items" json:"items"`
	Size      int64     `bson:"size" json:"size"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Index records which reports were stored. Load returns nil, nil for an unknown key.
type Index interface {
	Save(ctx context.Context, m *Meta) error
	Load(ctx context.Context, key string) (*Meta, error)
}

// MongoIndex keeps report metadata in a Mongo collection keyed by report key.
type MongoIndex struct {
	col *mongo.Collection
}

func NewMongoIndex(col *mongo.Collection) *MongoIndex {
	return &MongoIndex{col: col}
}

// Save upserts m by key.
func (ix *MongoIndex) Save(ctx context.Context, m *Meta) error {
	opts := options.Update().SetUpsert(true)
	if _, err := ix.col.UpdateOne(ctx, bson.M{"key": m.Key}, bson.M{"$set": m}, opts); err != nil {
		return fmt.Errorf("save report meta: %w", err)
	}
	return nil
}

func (ix *MongoIndex) Load(ctx context.Context, key string) (*Meta, error) {
	var m Meta
	if err := ix.col.FindOne(ctx, bson.M{"key": key}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load report meta: %w", err)
	}
	return &m, nil
}
