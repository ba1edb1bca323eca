package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

// Backend implements storage.ListingStore on a MongoDB collection of scraped
// listings. The scraper owns writes; everything here is read-only apart from
// index creation.
type Backend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New connects to MongoDB and returns a listing store bound to the configured
// database and collection.
func New(ctx context.Context, uri, dbName, collName string) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrapErr("connect to mongodb", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, wrapErr("ping mongodb", err)
	}

	return &Backend{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

// wrapErr classifies a driver error so callers can tell an unreachable store
// from everything else. Context cancellation passes through untouched.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w: %v", op, storage.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (b *Backend) Count(ctx context.Context, filters storage.Filters, search *storage.SearchFilter) (int64, error) {
	filter, err := makeFilterBSON(filters, search)
	if err != nil {
		return 0, err
	}
	count, err := b.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapErr("count listings", err)
	}
	return count, nil
}

func (b *Backend) Find(ctx context.Context, q storage.Query) ([]model.ListingRecord, error) {
	findOptions := options.Find()
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}
	if q.Offset > 0 {
		findOptions.SetSkip(q.Offset)
	}
	if len(q.OrderBy) > 0 {
		findOptions.SetSort(makeSortBSON(q.OrderBy))
	}

	filter, err := makeFilterBSON(q.Filters, q.Search)
	if err != nil {
		return nil, err
	}
	cursor, err := b.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapErr("find listings", err)
	}
	defer cursor.Close(ctx)

	var records []model.ListingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, wrapErr("decode listings", err)
	}
	return records, nil
}

func (b *Backend) Distinct(ctx context.Context, field string, filters storage.Filters) ([]string, error) {
	filter, err := makeFilterBSON(filters, nil)
	if err != nil {
		return nil, err
	}
	filter[field] = bson.M{"$nin": bson.A{nil, ""}}

	raw, err := b.collection.Distinct(ctx, field, filter)
	if err != nil {
		return nil, wrapErr("distinct "+field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values, nil
}

func (b *Backend) CountByField(ctx context.Context, field string, filters storage.Filters) (map[string]int64, error) {
	match, err := makeFilterBSON(filters, nil)
	if err != nil {
		return nil, err
	}
	match[field] = bson.M{"$nin": bson.A{nil, ""}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := b.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("count by "+field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Value string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapErr("decode "+field+" counts", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}

func (b *Backend) BreweryRefs(ctx context.Context) ([]model.BreweryRef, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"brewery_name": bson.M{"$nin": bson.A{nil, ""}}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": "$brewery_name",
			// $max skips nulls, so any known location wins over missing ones.
			"location": bson.M{"$max": "$brewery_location"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := b.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("aggregate breweries", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name     string `bson:"_id"`
		Location string `bson:"location"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapErr("decode breweries", err)
	}

	refs := make([]model.BreweryRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, model.BreweryRef{Name: row.Name, Location: row.Location})
	}
	return refs, nil
}

func (b *Backend) LatestFirstSeen(ctx context.Context) (time.Time, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "first_seen", Value: -1}}).
		SetProjection(bson.M{"first_seen": 1})

	var row struct {
		FirstSeen time.Time `bson:"first_seen"`
	}
	err := b.collection.FindOne(ctx, bson.M{}, opts).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, wrapErr("latest first_seen", err)
	}
	return row.FirstSeen, nil
}

func (b *Backend) Watch(ctx context.Context) (<-chan storage.Event, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := b.collection.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, wrapErr("watch listings", err)
	}

	events := make(chan storage.Event)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var change struct {
				OperationType string               `bson:"operationType"`
				FullDocument  *model.ListingRecord `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				slog.Warn("Failed to decode change event", "error", err)
				continue
			}

			evt := storage.Event{Timestamp: time.Now()}
			switch change.OperationType {
			case "insert":
				evt.Type = storage.EventInsert
			case "update", "replace":
				evt.Type = storage.EventUpdate
			case "delete":
				evt.Type = storage.EventDelete
			default:
				continue
			}
			if change.FullDocument != nil {
				evt.Listing = change.FullDocument
				evt.SourceID = change.FullDocument.SourceID
			}

			select {
			case events <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (b *Backend) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "first_seen", Value: -1}}},
		{Keys: bson.D{{Key: "shop", Value: 1}}},
		{Keys: bson.D{{Key: "canonical_id", Value: 1}}},
		{Keys: bson.D{{Key: "style", Value: 1}}},
		{Keys: bson.D{{Key: "brewery_name", Value: 1}}},
	}
	if _, err := b.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return wrapErr("create indexes", err)
	}
	return nil
}

func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
