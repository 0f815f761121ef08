package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gowhere/internal/domain/filter"
)

// Query is the store-level rendition of a read: match criteria, field
// projection and sort order. A nil Projection returns whole documents and a
// nil Sort leaves the natural order.
type Query struct {
	Criteria   bson.D
	Projection bson.D
	Sort       bson.D
}

// FindOptions converts the projection and sort into driver options.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	return opts
}

// substring is the case-insensitive substring condition for a pattern term.
func substring(t filter.Term) bson.D {
	return bson.D{{Key: "$regex", Value: t.Regex()}, {Key: "$options", Value: "i"}}
}

// identityOr matches an identity exactly and falls back to a substring
// condition for anything else. Against identity-typed fields the fallback
// matches nothing, which keeps malformed identities permissive rather than
// an error.
func identityOr(t filter.Term) any {
	if t.Kind == filter.KindIdentity {
		return t.ID
	}
	return substring(t)
}
