package mongoRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique id indexes plus the lookups the
// directory relies on.
func (a *Adapter) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := newContext(ctx, readTimeout)
	defer cancel()

	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}, Options: options.Index().SetUnique(true)}
	}
	plain := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d}
	}

	sets := map[*mongo.Collection][]mongo.IndexModel{
		a.providers: {
			unique("id"),
			unique("email"),
			plain("categories"),
			plain("suburb"),
			{Keys: bson.D{{Key: "subscription_tier", Value: 1}, {Key: "rating", Value: -1}}},
		},
		a.participants: {unique("id"), unique("email")},
		a.reviews:      {unique("id"), plain("provider_id", "created_at")},
		a.enquiries:    {unique("id"), plain("participant_id"), plain("provider_id", "status")},
		a.bookings:     {unique("id"), plain("participant_id"), plain("provider_id", "status")},
	}
	for coll, models := range sets {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}
