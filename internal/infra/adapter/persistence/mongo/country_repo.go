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

type CountryRepo struct {
	store        store
	queryBuilder *CountryQueryBuilder
}

func NewCountryRepo(db *mongodriver.Database, cb *circuitbreaker.CircuitBreaker) repository.CountryRepository {
	return &CountryRepo{
		store:        newStore(db, CountriesCollection, cb),
		queryBuilder: NewCountryQueryBuilder(),
	}
}

func (repo *CountryRepo) Find(ctx context.Context, f repository.CountryFilter, withCities bool) ([]*entity.Country, error) {
	countries, err := find[entity.Country](ctx, repo.store, repo.queryBuilder.Build(f, withCities))
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	return countries, nil
}

func (repo *CountryRepo) Get(ctx context.Context, id primitive.ObjectID) (*entity.Country, error) {
	country, err := get[entity.Country](ctx, repo.store, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return country, nil
}

func (repo *CountryRepo) Create(ctx context.Context, country *entity.Country) error {
	if country.ID.IsZero() {
		country.ID = primitive.NewObjectID()
	}
	if err := insert(ctx, repo.store, country); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CountryRepo) Update(ctx context.Context, id primitive.ObjectID, patch repository.CountryPatch) error {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if err := updateByID(ctx, repo.store, id, patchUpdate(set, "cities", patch.AddCities)); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if len(patch.AddCities) > 0 {
		metrics.RecordEmbeddedChange(CountriesCollection, embedded.ModeBulk.String())
	}
	return nil
}

func (repo *CountryRepo) ApplyCity(ctx context.Context, change embedded.Fragment) error {
	if err := apply(ctx, repo.store, "cities", change); err != nil {
		return fmt.Errorf("ApplyCity: %w", err)
	}
	return nil
}

func (repo *CountryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := deleteByID(ctx, repo.store, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
