package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
)

// CategoryFilter contains optional filters for category reads.
type CategoryFilter struct {
	Value  string // case-insensitive substring
	Name   string // case-insensitive substring
	Subcat string // sub-category identity, or name/value substring
}

// CategoryPatch carries the top-level fields of a partial update.
type CategoryPatch struct {
	Value *string
	Name  *string
	// AddSubcats are appended after the stored sub-categories.
	AddSubcats []entity.Subcategory
}

type CategoryRepository interface {
	Find(ctx context.Context, filter CategoryFilter, withSubcats bool) ([]*entity.Category, error)
	// Get returns (nil, nil) if the category does not exist.
	Get(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) error
	ApplySubcat(ctx context.Context, change embedded.Fragment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
