package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
	"gowhere/internal/resilience/circuitbreaker"
)

type ArticleRepo struct {
	store        store
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *mongodriver.Database, cb *circuitbreaker.CircuitBreaker) repository.ArticleRepository {
	return &ArticleRepo{
		store:        newStore(db, ArticlesCollection, cb),
		queryBuilder: NewArticleQueryBuilder(),
	}
}

func (repo *ArticleRepo) Find(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	articles, err := find[entity.Article](ctx, repo.store, repo.queryBuilder.Build(f))
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id primitive.ObjectID) (*entity.Article, error) {
	article, err := get[entity.Article](ctx, repo.store, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	if err := insert(ctx, repo.store, article); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, id primitive.ObjectID, patch repository.ArticlePatch) error {
	if err := updateByID(ctx, repo.store, id, setUpdate(articleSet(patch))); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) ApplyComment(ctx context.Context, change embedded.Fragment) error {
	if err := apply(ctx, repo.store, "comments", change); err != nil {
		return fmt.Errorf("ApplyComment: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := deleteByID(ctx, repo.store, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// articleSet lists the supplied top-level fields of patch as $set entries.
func articleSet(patch repository.ArticlePatch) bson.D {
	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Details != nil {
		set = append(set, bson.E{Key: "details", Value: *patch.Details})
	}
	if patch.Photos != nil {
		set = append(set, bson.E{Key: "photos", Value: *patch.Photos})
	}
	if patch.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: *patch.Tags})
	}
	if patch.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *patch.Location})
	}
	if patch.Categories != nil {
		set = append(set, bson.E{Key: "categories", Value: *patch.Categories})
	}
	if patch.Contributors != nil {
		set = append(set, bson.E{Key: "contributors", Value: patch.Contributors})
	}
	if patch.AllowPublic != nil {
		set = append(set, bson.E{Key: "allowPublic", Value: *patch.AllowPublic})
	}
	if !patch.LastModified.IsZero() {
		set = append(set, bson.E{Key: "lastModified", Value: patch.LastModified})
	}
	return set
}
