package mongo

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"gowhere/internal/domain/filter"
	"gowhere/internal/repository"
)

// Rating bounds applied when only one side of the range is supplied.
const (
	ratingFloor   = 0.0
	ratingCeiling = 5.0
)

// listingProjection is the summary view of an article.
var listingProjection = bson.D{
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "photos", Value: 1},
	{Key: "tags", Value: 1},
	{Key: "location", Value: 1},
	{Key: "categories", Value: 1},
	{Key: "rating", Value: 1},
	{Key: "createdDate", Value: 1},
	{Key: "lastModified", Value: 1},
	{Key: "allowPublic", Value: 1},
}

// sortFields maps accepted sort names to document paths.
var sortFields = map[string]string{
	"createdDate":  "createdDate",
	"lastModified": "lastModified",
	"title":        "title",
	"rating":       "rating.avg",
}

// ArticleQueryBuilder builds article reads.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// Build turns f into a query.
//
// Search runs against the text index over title, description and section
// content. Reference filters match by identity; values without the identity
// shape are kept as substring conditions and therefore match nothing.
// The rating range is applied only when at least one numeric bound is given.
func (qb *ArticleQueryBuilder) Build(f repository.ArticleFilter) Query {
	criteria := bson.D{}

	if t := filter.Identifier(f.ArticleID); t.Supplied() {
		criteria = append(criteria, bson.E{Key: "_id", Value: identityOr(t)})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		criteria = append(criteria, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: s}}})
	}

	refs := []struct {
		path  string
		value string
	}{
		{"location.countryId", f.CountryID},
		{"location.cityId", f.CityID},
		{"categories.catId", f.CatID},
		{"categories.subcatIds", f.SubcatID},
	}
	for _, ref := range refs {
		if t := filter.Identifier(ref.value); t.Supplied() {
			criteria = append(criteria, bson.E{Key: ref.path, Value: identityOr(t)})
		}
	}

	if rating := ratingRange(f.RatingFrom, f.RatingTo); rating != nil {
		criteria = append(criteria, bson.E{Key: "rating.avg", Value: rating})
	}

	var projection bson.D
	if f.View != repository.ViewFull {
		projection = listingProjection
	}

	return Query{
		Criteria:   criteria,
		Projection: projection,
		Sort:       articleSort(f.Sort),
	}
}

// ratingRange returns the $gte/$lte condition, or nil when neither bound parses.
func ratingRange(from, to string) bson.D {
	lo, loOK := parseBound(from)
	hi, hiOK := parseBound(to)
	if !loOK && !hiOK {
		return nil
	}
	if !loOK {
		lo = ratingFloor
	}
	if !hiOK {
		hi = ratingCeiling
	}
	return bson.D{{Key: "$gte", Value: lo}, {Key: "$lte", Value: hi}}
}

// parseBound accepts finite numbers only; NaN and infinities count as non-numeric.
func parseBound(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// articleSort defaults to createdDate descending. title breaks ties
// ascending, or _id when title is itself the sort field.
func articleSort(spec repository.SortSpec) bson.D {
	field, ok := sortFields[strings.TrimSpace(spec.Field)]
	if !ok {
		field = "createdDate"
	}

	order := -1
	switch strings.ToLower(strings.TrimSpace(spec.Order)) {
	case "asc", "1":
		order = 1
	}

	tiebreak := "title"
	if field == "title" {
		tiebreak = "_id"
	}
	return bson.D{{Key: field, Value: order}, {Key: tiebreak, Value: 1}}
}
