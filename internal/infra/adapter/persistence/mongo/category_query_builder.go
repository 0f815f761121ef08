package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"gowhere/internal/domain/filter"
	"gowhere/internal/repository"
)

// CategoryQueryBuilder builds category reads.
type CategoryQueryBuilder struct{}

// NewCategoryQueryBuilder creates a new query builder instance.
func NewCategoryQueryBuilder() *CategoryQueryBuilder {
	return &CategoryQueryBuilder{}
}

// Build turns f into a query. subcat matches a sub-category identity, or
// either its name or its value as a substring.
func (qb *CategoryQueryBuilder) Build(f repository.CategoryFilter, withSubcats bool) Query {
	criteria := bson.D{}
	if t := filter.Text(f.Value); t.Supplied() {
		criteria = append(criteria, bson.E{Key: "value", Value: substring(t)})
	}
	if t := filter.Text(f.Name); t.Supplied() {
		criteria = append(criteria, bson.E{Key: "name", Value: substring(t)})
	}

	var subcatMatch bson.D
	if t := filter.Identifier(f.Subcat); t.Supplied() {
		if t.Kind == filter.KindIdentity {
			subcatMatch = bson.D{{Key: "_id", Value: t.ID}}
		} else {
			subcatMatch = bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "name", Value: substring(t)}},
				bson.D{{Key: "value", Value: substring(t)}},
			}}}
		}
		criteria = append(criteria, bson.E{Key: "subcats", Value: bson.D{{Key: "$elemMatch", Value: subcatMatch}}})
	}

	projection := bson.D{{Key: "value", Value: 1}, {Key: "name", Value: 1}}
	if withSubcats {
		if subcatMatch != nil {
			projection = append(projection, bson.E{Key: "subcats", Value: bson.D{{Key: "$elemMatch", Value: subcatMatch}}})
		} else {
			projection = append(projection, bson.E{Key: "subcats", Value: 1})
		}
	}

	return Query{
		Criteria:   criteria,
		Projection: projection,
		Sort:       bson.D{{Key: "name", Value: 1}},
	}
}
