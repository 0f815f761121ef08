// Package mongo provides MongoDB implementations of repository interfaces.
//
// Every store round-trip goes through observe, which opens a client span,
// records the operation latency and runs the call through the store circuit
// breaker. A failed operation is surfaced once; nothing here retries.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/observability/metrics"
	"gowhere/internal/observability/tracing"
	"gowhere/internal/resilience/circuitbreaker"
)

// Collection names.
const (
	CountriesCollection  = "countries"
	CategoriesCollection = "categories"
	ArticlesCollection   = "articles"
)

// store binds a collection to the breaker guarding it.
type store struct {
	coll *mongodriver.Collection
	cb   *circuitbreaker.CircuitBreaker
}

func newStore(db *mongodriver.Database, name string, cb *circuitbreaker.CircuitBreaker) store {
	return store{coll: db.Collection(name), cb: cb}
}

// observe runs one store call with tracing, latency metrics and breaker protection.
func observe[T any](ctx context.Context, s store, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	collection := s.coll.Name()
	ctx, finish := tracing.StartStoreSpan(ctx, collection, operation)
	start := time.Now()

	out, err := circuitbreaker.Call(s.cb, func() (T, error) {
		return fn(ctx)
	})

	metrics.RecordStoreOperation(collection, operation, time.Since(start), err)
	finish(err)
	return out, err
}

// find decodes every document matched by q into a slice of T.
func find[T any](ctx context.Context, s store, q Query) ([]*T, error) {
	return observe(ctx, s, "find", func(ctx context.Context) ([]*T, error) {
		cur, err := s.coll.Find(ctx, q.Criteria, q.FindOptions())
		if err != nil {
			return nil, err
		}
		defer func() { _ = cur.Close(ctx) }()

		out := make([]*T, 0, 16)
		for cur.Next(ctx) {
			var doc T
			if err := cur.Decode(&doc); err != nil {
				return nil, fmt.Errorf("decode: %w", err)
			}
			out = append(out, &doc)
		}
		return out, cur.Err()
	})
}

// get returns the document with the given identity, or nil when absent.
func get[T any](ctx context.Context, s store, id primitive.ObjectID) (*T, error) {
	doc, err := observe(ctx, s, "get", func(ctx context.Context) (*T, error) {
		var doc T
		if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, nil
	}
	return doc, err
}

func insert(ctx context.Context, s store, doc any) error {
	_, err := observe(ctx, s, "insert", func(ctx context.Context) (*mongodriver.InsertOneResult, error) {
		return s.coll.InsertOne(ctx, doc)
	})
	if err != nil {
		return err
	}
	metrics.RecordDocumentWritten(s.coll.Name(), "create")
	return nil
}

// updateByID applies update to one document. It returns entity.ErrNotFound when
// nothing matched.
func updateByID(ctx context.Context, s store, id primitive.ObjectID, update bson.D) error {
	res, err := observe(ctx, s, "update", func(ctx context.Context) (*mongodriver.UpdateResult, error) {
		if len(update) == 0 {
			// nothing to change; still report a missing document
			n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
			return &mongodriver.UpdateResult{MatchedCount: n}, err
		}
		return s.coll.UpdateByID(ctx, id, update)
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	metrics.RecordDocumentWritten(s.coll.Name(), "update")
	return nil
}

// apply runs a single-item change against the named child array.
func apply(ctx context.Context, s store, array string, change embedded.Fragment) error {
	filter, update, err := fragmentUpdate(array, change)
	if err != nil {
		return err
	}
	res, err := observe(ctx, s, "update-"+array, func(ctx context.Context) (*mongodriver.UpdateResult, error) {
		return s.coll.UpdateOne(ctx, filter, update)
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	metrics.RecordEmbeddedChange(s.coll.Name(), change.Mode.String())
	return nil
}

func deleteByID(ctx context.Context, s store, id primitive.ObjectID) error {
	res, err := observe(ctx, s, "delete", func(ctx context.Context) (*mongodriver.DeleteResult, error) {
		return s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	metrics.RecordDocumentWritten(s.coll.Name(), "delete")
	return nil
}
