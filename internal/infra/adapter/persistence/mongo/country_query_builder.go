package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"gowhere/internal/domain/filter"
	"gowhere/internal/repository"
)

// CountryQueryBuilder builds country reads.
type CountryQueryBuilder struct{}

// NewCountryQueryBuilder creates a new query builder instance.
func NewCountryQueryBuilder() *CountryQueryBuilder {
	return &CountryQueryBuilder{}
}

// Build turns f into a query. code and name are substring matches; city
// becomes an element match on the cities array, by identity when the value has
// the identity shape and by name otherwise. When withCities is set, the cities
// projection reuses that element match so only the matching city is returned.
func (qb *CountryQueryBuilder) Build(f repository.CountryFilter, withCities bool) Query {
	criteria := bson.D{}
	if t := filter.Text(f.Code); t.Supplied() {
		criteria = append(criteria, bson.E{Key: "code", Value: substring(t)})
	}
	if t := filter.Text(f.Name); t.Supplied() {
		criteria = append(criteria, bson.E{Key: "name", Value: substring(t)})
	}

	var cityMatch bson.D
	if t := filter.Identifier(f.City); t.Supplied() {
		if t.Kind == filter.KindIdentity {
			cityMatch = bson.D{{Key: "_id", Value: t.ID}}
		} else {
			cityMatch = bson.D{{Key: "name", Value: substring(t)}}
		}
		criteria = append(criteria, bson.E{Key: "cities", Value: bson.D{{Key: "$elemMatch", Value: cityMatch}}})
	}

	projection := bson.D{{Key: "code", Value: 1}, {Key: "name", Value: 1}}
	if withCities {
		if cityMatch != nil {
			projection = append(projection, bson.E{Key: "cities", Value: bson.D{{Key: "$elemMatch", Value: cityMatch}}})
		} else {
			projection = append(projection, bson.E{Key: "cities", Value: 1})
		}
	}

	return Query{
		Criteria:   criteria,
		Projection: projection,
		Sort:       bson.D{{Key: "name", Value: 1}},
	}
}

