package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eadsgraphic/vizreport/internal/visualization"
	"github.com/eadsgraphic/vizreport/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// record is the stored document shape. _id is a Mongo ObjectID so List can
// sort by it to recover insertion order.
type record struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Firm        string             `bson:"firm,omitempty"`
}

func (r *record) toModel() *visualization.Visualization {
	return &visualization.Visualization{
		ID:          r.ID.Hex(),
		Name:        r.Name,
		Description: r.Description,
		Firm:        r.Firm,
	}
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// List filters on firm; the index is advisory so a failure only costs speed
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	idx := mongo.IndexModel{Keys: bson.D{{Key: "firm", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		logger.Warnf("visualizations: create firm index: %v", err)
	}
	return &MongoRepo{col: col}
}

// objectID parses a client-supplied id. Malformed ids can never match a
// record, so callers treat them as not found.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func listFilter(firm string) bson.M {
	if firm == "" {
		return bson.M{}
	}
	return bson.M{"firm": firm}
}

func (m *MongoRepo) Insert(ctx context.Context, v *visualization.Visualization) error {
	rec := record{ID: primitive.NewObjectID(), Name: v.Name, Description: v.Description, Firm: v.Firm}
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		return err
	}
	v.ID = rec.ID.Hex()
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*visualization.Visualization, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, visualization.ErrNotFound
	}
	var rec record
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, visualization.ErrNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (m *MongoRepo) List(ctx context.Context, firm string) ([]*visualization.Visualization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, listFilter(firm), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*visualization.Visualization{}
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Replace(ctx context.Context, id string, in visualization.Input) error {
	oid, ok := objectID(id)
	if !ok {
		return visualization.ErrNotFound
	}
	set := bson.M{"name": in.Name, "description": in.Description}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return visualization.ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (m *MongoRepo) DeleteAll(ctx context.Context) error {
	_, err := m.col.DeleteMany(ctx, bson.M{})
	return err
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
