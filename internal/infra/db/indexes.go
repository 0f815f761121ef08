package db

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Indexes lists the index models per collection.
//
// The unique indexes on countries.code and categories.value back the
// read-then-write uniqueness checks, which alone cannot stop two concurrent
// writers. Code matching is case-insensitive through a strength-2 collation.
func Indexes() map[string][]mongodriver.IndexModel {
	caseInsensitive := &options.Collation{Locale: "en", Strength: 2}

	return map[string][]mongodriver.IndexModel{
		"countries": {
			{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetName("uniq_code").SetUnique(true).SetCollation(caseInsensitive),
			},
			{
				Keys:    bson.D{{Key: "cities._id", Value: 1}},
				Options: options.Index().SetName("cities_id"),
			},
		},
		"categories": {
			{
				Keys:    bson.D{{Key: "value", Value: 1}},
				Options: options.Index().SetName("uniq_value").SetUnique(true).SetCollation(caseInsensitive),
			},
			{
				Keys:    bson.D{{Key: "subcats._id", Value: 1}},
				Options: options.Index().SetName("subcats_id"),
			},
		},
		"articles": {
			{
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "description", Value: "text"},
					{Key: "details.content", Value: "text"},
				},
				Options: options.Index().SetName("text_title_description_content"),
			},
			{
				Keys:    bson.D{{Key: "title", Value: 1}, {Key: "createdDate", Value: -1}},
				Options: options.Index().SetName("title_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "location.countryId", Value: 1}, {Key: "location.cityId", Value: 1}},
				Options: options.Index().SetName("location"),
			},
			{
				Keys:    bson.D{{Key: "categories.catId", Value: 1}},
				Options: options.Index().SetName("categories_cat"),
			},
		},
	}
}

// EnsureIndexes creates every index from Indexes. Creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongodriver.Database) error {
	for collection, models := range Indexes() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("mongo ensure indexes on %s: %w", collection, err)
		}
		slog.Debug("indexes ensured",
			slog.String("collection", collection),
			slog.Any("indexes", names))
	}
	return nil
}
