package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"beerdex/internal/storage"
)

// makeFilterBSON translates the store-neutral filter set into a Mongo filter
// document. Predicates on the same field are merged into one operator map so
// that e.g. exists + not_contains on canonical_id compose instead of
// overwriting each other. An operator this backend cannot express fails with
// storage.ErrInvalidQuery.
func makeFilterBSON(filters storage.Filters, search *storage.SearchFilter) (bson.M, error) {
	perField := map[string]bson.M{}

	for _, f := range filters {
		ops, ok := perField[f.Field]
		if !ok {
			ops = bson.M{}
			perField[f.Field] = ops
		}

		switch f.Op {
		case storage.OpEq:
			ops["$eq"] = f.Value
		case storage.OpNe:
			ops["$ne"] = f.Value
		case storage.OpGt:
			ops["$gt"] = f.Value
		case storage.OpGte:
			ops["$gte"] = f.Value
		case storage.OpLt:
			ops["$lt"] = f.Value
		case storage.OpLte:
			ops["$lte"] = f.Value
		case storage.OpIn:
			ops["$in"] = f.Value
		case storage.OpContains:
			ops["$regex"] = containsRegex(f.Value)
		case storage.OpNotContains:
			ops["$not"] = containsRegex(f.Value)
		case storage.OpExists:
			want, _ := f.Value.(bool)
			ops["$exists"] = want
			if want {
				// Present but null or empty counts as absent for our purposes.
				ops["$nin"] = bson.A{nil, ""}
			}
		default:
			return nil, fmt.Errorf("%w: operator %q on field %q", storage.ErrInvalidQuery, f.Op, f.Field)
		}
	}

	filter := bson.M{}
	for field, ops := range perField {
		filter[field] = ops
	}

	if search != nil && search.Term != "" {
		re := containsRegex(search.Term)
		or := make(bson.A, 0, len(search.Fields))
		for _, field := range search.Fields {
			or = append(or, bson.M{field: bson.M{"$regex": re}})
		}
		filter["$or"] = or
	}

	return filter, nil
}

func containsRegex(v interface{}) primitive.Regex {
	s, _ := v.(string)
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// makeSortBSON translates order directives into a Mongo sort document.
func makeSortBSON(orders []storage.Order) bson.D {
	sort := bson.D{}
	for _, o := range orders {
		dir := 1
		if o.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Field, Value: dir})
	}
	return sort
}
