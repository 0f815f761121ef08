package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
)

// View selects the projection returned by article reads.
type View string

const (
	// ViewListing returns summary fields only.
	ViewListing View = "listing"
	// ViewFull returns every field.
	ViewFull View = "full"
)

// SortSpec is the requested ordering of an article read.
type SortSpec struct {
	Field string // createdDate (default), lastModified, title, rating
	Order string // asc|1, desc|-1 (default)
}

// ArticleFilter contains optional filters for article reads.
// Values are kept as raw strings; malformed values fall through to the
// permissive interpretation of the query builder.
type ArticleFilter struct {
	ArticleID  string
	Search     string // full-text over title, description and section content
	CountryID  string
	CityID     string
	CatID      string
	SubcatID   string
	RatingFrom string // default 0, non-numeric ignored
	RatingTo   string // default 5, non-numeric ignored
	Sort       SortSpec
	View       View
}

// ArticlePatch carries the top-level fields of a partial update. Nil fields are
// left untouched; a non-nil pointer to an empty slice clears the field.
type ArticlePatch struct {
	Title        *string
	Description  *string
	Details      *[]entity.Section
	Photos       *[]string
	Tags         *[]string
	Location     *entity.Location
	Categories   *[]entity.ArticleCategory
	Contributors []entity.Contributor // full array; nil means unchanged
	AllowPublic  *bool
	LastModified time.Time
}

type ArticleRepository interface {
	Find(ctx context.Context, filter ArticleFilter) ([]*entity.Article, error)
	// Get returns (nil, nil) if the article does not exist.
	Get(ctx context.Context, id primitive.ObjectID) (*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, id primitive.ObjectID, patch ArticlePatch) error
	// ApplyComment applies a single-item change to the comments array.
	ApplyComment(ctx context.Context, change embedded.Fragment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
