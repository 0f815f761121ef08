package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
)

// CountryFilter contains optional filters for country reads.
// An empty string means the filter was not supplied.
type CountryFilter struct {
	Code string // case-insensitive substring
	Name string // case-insensitive substring
	City string // city identity or city name substring
}

// CountryPatch carries the top-level fields of a partial update.
// Nil fields are left untouched.
type CountryPatch struct {
	Name *string
	// AddCities are appended after the stored cities; stored cities are left as they are.
	AddCities []entity.City
}

type CountryRepository interface {
	// Find returns countries matching filter. Cities are projected only when
	// withCities is set, narrowed to the matching city when filter.City is supplied.
	Find(ctx context.Context, filter CountryFilter, withCities bool) ([]*entity.Country, error)
	// Get returns (nil, nil) if the country does not exist.
	Get(ctx context.Context, id primitive.ObjectID) (*entity.Country, error)
	Create(ctx context.Context, country *entity.Country) error
	// Update returns entity.ErrNotFound when no country matched.
	Update(ctx context.Context, id primitive.ObjectID, patch CountryPatch) error
	// ApplyCity applies a single-item change to the cities array.
	// It returns entity.ErrNotFound when the parent or the targeted city is missing.
	ApplyCity(ctx context.Context, change embedded.Fragment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
