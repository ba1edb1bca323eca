package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"beerdex/internal/storage"
)

func TestMakeFilterBSON_MergesPredicatesPerField(t *testing.T) {
	filter, err := makeFilterBSON(storage.Filters{
		{Field: "canonical_id", Op: storage.OpExists, Value: true},
		{Field: "canonical_id", Op: storage.OpNotContains, Value: "/search?"},
	}, nil)
	require.NoError(t, err)

	ops, ok := filter["canonical_id"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, ops["$exists"])
	assert.Equal(t, bson.A{nil, ""}, ops["$nin"])

	not, ok := ops["$not"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `/search\?`, not.Pattern)
	assert.Equal(t, "i", not.Options)
}

func TestMakeFilterBSON_Operators(t *testing.T) {
	filter, err := makeFilterBSON(storage.Filters{
		{Field: "abv", Op: storage.OpGte, Value: 4.5},
		{Field: "abv", Op: storage.OpLte, Value: 9.0},
		{Field: "style", Op: storage.OpIn, Value: []string{"IPA"}},
		{Field: "is_set", Op: storage.OpNe, Value: true},
	}, nil)
	require.NoError(t, err)

	abv := filter["abv"].(bson.M)
	assert.Equal(t, 4.5, abv["$gte"])
	assert.Equal(t, 9.0, abv["$lte"])

	style := filter["style"].(bson.M)
	assert.Equal(t, []string{"IPA"}, style["$in"])

	isSet := filter["is_set"].(bson.M)
	assert.Equal(t, true, isSet["$ne"])
}

func TestMakeFilterBSON_SearchBecomesOr(t *testing.T) {
	filter, err := makeFilterBSON(nil, &storage.SearchFilter{
		Fields: []string{"name", "brewery_name"},
		Term:   "hazy (dry)",
	})
	require.NoError(t, err)

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first := or[0].(bson.M)["name"].(bson.M)["$regex"].(primitive.Regex)
	assert.Equal(t, `hazy \(dry\)`, first.Pattern, "regex metacharacters are escaped")
}

func TestMakeFilterBSON_ContainsIsCaseInsensitive(t *testing.T) {
	filter, err := makeFilterBSON(storage.Filters{
		{Field: "stock_status", Op: storage.OpContains, Value: "in stock"},
	}, nil)
	require.NoError(t, err)

	re := filter["stock_status"].(bson.M)["$regex"].(primitive.Regex)
	assert.Equal(t, "in stock", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestMakeFilterBSON_RejectsUnknownOperator(t *testing.T) {
	_, err := makeFilterBSON(storage.Filters{
		{Field: "abv", Op: storage.FilterOp("between"), Value: 4},
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestMakeSortBSON(t *testing.T) {
	sort := makeSortBSON([]storage.Order{
		{Field: "first_seen", Descending: true},
		{Field: "name"},
	})

	require.Len(t, sort, 2)
	assert.Equal(t, bson.E{Key: "first_seen", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "name", Value: 1}, sort[1])
}
