package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/observability/metrics"
	"gowhere/internal/repository"
	"gowhere/internal/resilience/circuitbreaker"
)

type CategoryRepo struct {
	store        store
	queryBuilder *CategoryQueryBuilder
}

func NewCategoryRepo(db *mongodriver.Database, cb *circuitbreaker.CircuitBreaker) repository.CategoryRepository {
	return &CategoryRepo{
		store:        newStore(db, CategoriesCollection, cb),
		queryBuilder: NewCategoryQueryBuilder(),
	}
}

func (repo *CategoryRepo) Find(ctx context.Context, f repository.CategoryFilter, withSubcats bool) ([]*entity.Category, error) {
	categories, err := find[entity.Category](ctx, repo.store, repo.queryBuilder.Build(f, withSubcats))
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	return categories, nil
}

func (repo *CategoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	category, err := get[entity.Category](ctx, repo.store, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return category, nil
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if err := insert(ctx, repo.store, category); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) Update(ctx context.Context, id primitive.ObjectID, patch repository.CategoryPatch) error {
	set := bson.D{}
	if patch.Value != nil {
		set = append(set, bson.E{Key: "value", Value: *patch.Value})
	}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if err := updateByID(ctx, repo.store, id, patchUpdate(set, "subcats", patch.AddSubcats)); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if len(patch.AddSubcats) > 0 {
		metrics.RecordEmbeddedChange(CategoriesCollection, embedded.ModeBulk.String())
	}
	return nil
}

func (repo *CategoryRepo) ApplySubcat(ctx context.Context, change embedded.Fragment) error {
	if err := apply(ctx, repo.store, "subcats", change); err != nil {
		return fmt.Errorf("ApplySubcat: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := deleteByID(ctx, repo.store, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
