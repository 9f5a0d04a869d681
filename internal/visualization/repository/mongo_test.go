package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	require.True(t, ok)
	require.Equal(t, oid, got)

	for _, bad := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, ok := objectID(bad)
		require.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestListFilter(t *testing.T) {
	require.Equal(t, bson.M{}, listFilter(""))
	require.Equal(t, bson.M{"firm": "acme"}, listFilter("acme"))
}

func TestRecordRoundTrip(t *testing.T) {
	rec := record{ID: primitive.NewObjectID(), Name: "n", Description: "d", Firm: "acme"}
	raw, err := bson.Marshal(rec)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	require.Equal(t, rec.ID, doc["_id"])
	require.Equal(t, "acme", doc["firm"])

	m := rec.toModel()
	require.Equal(t, rec.ID.Hex(), m.ID)
	require.Equal(t, "n", m.Name)
	require.Equal(t, "d", m.Description)
}

func TestRecordOmitsEmptyFirm(t *testing.T) {
	raw, err := bson.Marshal(record{ID: primitive.NewObjectID(), Name: "n"})
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	_, has := doc["firm"]
	require.False(t, has)
}
