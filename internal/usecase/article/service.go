package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
)

// ContributorInput is the author or editor submitting a write.
// DisplayName falls back to Name when empty.
type ContributorInput struct {
	Name        string
	DisplayName string
	Email       string
}

// LocationInput references a country and one of its cities.
type LocationInput struct {
	CountryID string
	CityID    string
	Address   string
}

// CategoryRefInput references a category and a subset of its sub-categories.
type CategoryRefInput struct {
	CatID     string
	SubcatIDs []string
}

// SectionInput is one block of article content.
type SectionInput struct {
	SectionName string
	Content     string
}

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title       string
	Description string
	Details     []SectionInput
	Photos      []string
	Tags        []string
	Location    *LocationInput
	Categories  []CategoryRefInput
	Contributor *ContributorInput
	AllowPublic bool
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Details     *[]SectionInput
	Photos      *[]string
	Tags        *[]string
	Location    *LocationInput
	Categories  *[]CategoryRefInput
	Contributor *ContributorInput
	AllowPublic *bool
}

// CommentInput represents a reader comment.
type CommentInput struct {
	Name    string
	Email   string
	Content string
}

// Change is a validated partial update ready to be persisted.
type Change struct {
	ID    primitive.ObjectID
	Patch repository.ArticlePatch
}

// Service provides article management use cases.
// Countries and Categories are read to resolve the references an article holds.
type Service struct {
	Repo       repository.ArticleRepository
	Countries  repository.CountryRepository
	Categories repository.CategoryRepository
	NewID      embedded.IDFunc
	Now        func() time.Time
}

// List returns the articles matching f, projected and sorted as f requests.
func (s *Service) List(ctx context.Context, f repository.ArticleFilter) ([]*entity.Article, error) {
	articles, err := s.Repo.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article with every field.
func (s *Service) Get(ctx context.Context, rawID string) (*entity.Article, error) {
	id, err := entity.ParseID("_id", rawID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id, rawID)
}

// PrepareCreate validates in and returns the document to insert. The
// submitting contributor becomes both author and last modifier.
func (s *Service) PrepareCreate(ctx context.Context, in CreateInput) (*entity.Article, error) {
	var v entity.Violations

	checkTitle(&v, in.Title)
	checkDescription(&v, in.Description)
	checkSections(&v, in.Details)
	checkPhotos(&v, in.Photos)
	checkTags(&v, in.Tags)

	if in.Contributor == nil {
		v.Add("contributor", msgContributorRequired)
	} else {
		checkContributor(&v, *in.Contributor)
	}

	var location entity.Location
	if in.Location == nil {
		v.Add("location", msgLocationRequired)
	} else {
		loc, lv, err := s.resolveLocation(ctx, *in.Location)
		if err != nil {
			return nil, err
		}
		v.Merge(lv)
		location = loc
	}

	categories, cv, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}
	v.Merge(cv)

	if err := v.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	contributor := toContributor(*in.Contributor)
	contributor.IsAuthor = true
	contributor.IsLastMod = true
	return &entity.Article{
		ID:           s.newID()(),
		Title:        in.Title,
		Description:  in.Description,
		Details:      toSections(in.Details),
		Photos:       orEmpty(in.Photos),
		Tags:         orEmpty(in.Tags),
		Location:     location,
		Categories:   categories,
		Contributors: []entity.Contributor{contributor},
		Rating:       entity.Rating{Avg: 0, Count: 0},
		Comments:     []entity.Comment{},
		CreatedDate:  now,
		LastModified: now,
		AllowPublic:  in.AllowPublic,
	}, nil
}

// Create validates and inserts a new article.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	article, err := s.PrepareCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// PrepareUpdate validates the supplied fields with the create rules and
// returns the patch to apply. A contributor is appended as the new last
// modifier when the article allows public contribution; otherwise it must
// already be a contributor and is promoted.
func (s *Service) PrepareUpdate(ctx context.Context, in UpdateInput) (*Change, error) {
	id, err := entity.ParseID("_id", in.ID)
	if err != nil {
		return nil, err
	}
	current, err := s.load(ctx, id, in.ID)
	if err != nil {
		return nil, err
	}

	var v entity.Violations
	patch := repository.ArticlePatch{
		Title:       in.Title,
		Description: in.Description,
		Photos:      in.Photos,
		Tags:        in.Tags,
		AllowPublic: in.AllowPublic,
	}

	if in.Title != nil {
		checkTitle(&v, *in.Title)
	}
	if in.Description != nil {
		checkDescription(&v, *in.Description)
	}
	if in.Details != nil {
		checkSections(&v, *in.Details)
		sections := toSections(*in.Details)
		patch.Details = &sections
	}
	if in.Photos != nil {
		checkPhotos(&v, *in.Photos)
	}
	if in.Tags != nil {
		checkTags(&v, *in.Tags)
	}

	if in.Location != nil {
		loc, lv, err := s.resolveLocation(ctx, *in.Location)
		if err != nil {
			return nil, err
		}
		v.Merge(lv)
		patch.Location = &loc
	}
	if in.Categories != nil {
		categories, cv, err := s.resolveCategories(ctx, *in.Categories)
		if err != nil {
			return nil, err
		}
		v.Merge(cv)
		patch.Categories = &categories
	}

	if in.Contributor != nil {
		checkContributor(&v, *in.Contributor)
		allowPublic := current.AllowPublic
		if in.AllowPublic != nil {
			allowPublic = *in.AllowPublic
		}
		email := strings.TrimSpace(in.Contributor.Email)
		known := current.HasContributorEmail(email)
		switch {
		case allowPublic && known:
			v.AddValue("contributor.email", in.Contributor.Email, msgContributorExists)
		case !allowPublic && !known:
			v.AddValue("contributor.email", in.Contributor.Email, msgContributorUnknown)
		}
		patch.Contributors = entity.WithLastModifier(current.Contributors, toContributor(*in.Contributor))
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	patch.LastModified = s.now()
	return &Change{ID: id, Patch: patch}, nil
}

// Update validates and applies a partial update, returning the stored result.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Article, error) {
	change, err := s.PrepareUpdate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, change.ID, change.Patch); err != nil {
		return nil, notFound(err, in.ID, "update article")
	}
	return s.load(ctx, change.ID, in.ID)
}

// Delete removes an article together with its comments.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := entity.ParseID("_id", rawID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFound(err, rawID, "delete article")
	}
	return nil
}

// AddComment validates in and appends it to the article's comments.
func (s *Service) AddComment(ctx context.Context, articleID string, in CommentInput) (*entity.Comment, error) {
	id, err := entity.ParseID("_id", articleID)
	if err != nil {
		return nil, err
	}

	var v entity.Violations
	checkPerson(&v, "comment.name", "Comment Name", in.Name)
	checkEmail(&v, "comment.email", "Comment Email", in.Email)
	v.Check(entity.Required("comment.content", "Comment Content", in.Content))
	v.Check(entity.NotBlank("comment.content", "Comment Content", in.Content))
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment, change := embedded.Push(id, entity.Comment{
		Name:        in.Name,
		Email:       strings.TrimSpace(in.Email),
		Content:     in.Content,
		CreatedDate: s.now(),
	}, s.NewID)
	if err := s.Repo.ApplyComment(ctx, change); err != nil {
		return nil, notFound(err, articleID, "add comment")
	}
	return &comment, nil
}

// RemoveComment pulls one comment out of the article.
func (s *Service) RemoveComment(ctx context.Context, articleID, commentID string) error {
	id, err := entity.ParseID("_id", articleID)
	if err != nil {
		return err
	}
	cid, err := entity.ParseID("comments._id", commentID)
	if err != nil {
		return err
	}
	if err := s.Repo.ApplyComment(ctx, embedded.Pull(id, cid)); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.NewNotFound("comments._id", commentID, msgCommentNotFound)
		}
		return fmt.Errorf("remove comment: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID, raw string) (*entity.Article, error) {
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, entity.NewNotFound("_id", raw, msgNotFound)
	}
	return article, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *Service) newID() embedded.IDFunc {
	if s.NewID == nil {
		return embedded.NewID
	}
	return s.NewID
}

func notFound(err error, raw, op string) error {
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NewNotFound("_id", raw, msgNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toContributor(in ContributorInput) entity.Contributor {
	display := in.DisplayName
	if display == "" {
		display = in.Name
	}
	return entity.Contributor{
		Name:        in.Name,
		DisplayName: display,
		Email:       strings.TrimSpace(in.Email),
	}
}

func toSections(in []SectionInput) []entity.Section {
	out := make([]entity.Section, 0, len(in))
	for _, sec := range in {
		out = append(out, entity.Section{SectionName: sec.SectionName, Content: sec.Content})
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
