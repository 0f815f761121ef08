package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
	"gowhere/internal/usecase/fanout"
)

// SubcatInput is a submitted sub-category. ID is empty for a new one.
type SubcatInput struct {
	ID    string
	Value string
	Name  string
}

// CreateInput represents the input parameters for creating a new category.
type CreateInput struct {
	Value   string
	Name    string
	Subcats []SubcatInput
}

// UpdateInput represents a partial update. Nil fields are not updated.
type UpdateInput struct {
	ID      string
	Value   *string
	Name    *string
	Subcats []SubcatInput
}

// SubcatPatch carries the fields of a single sub-category edit.
type SubcatPatch struct {
	Value *string
	Name  *string
}

// Change is a validated partial update ready to be persisted.
type Change struct {
	ID    primitive.ObjectID
	Patch repository.CategoryPatch
}

// Service provides category management use cases.
type Service struct {
	Repo  repository.CategoryRepository
	NewID embedded.IDFunc
}

// List returns the categories matching f.
func (s *Service) List(ctx context.Context, f repository.CategoryFilter, withSubcats bool) ([]*entity.Category, error) {
	categories, err := s.Repo.Find(ctx, f, withSubcats)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// PrepareCreate validates in and returns the document to insert.
func (s *Service) PrepareCreate(ctx context.Context, in CreateInput) (*entity.Category, error) {
	var v entity.Violations

	if ve := entity.Required("value", labelValue, in.Value); ve != nil {
		v.Check(ve)
	} else {
		ve, err := s.checkValue(ctx, in.Value, primitive.NilObjectID)
		if err != nil {
			return nil, err
		}
		v.Check(ve)
	}

	v.Check(entity.Required("name", labelName, in.Name))
	if in.Name != "" {
		v.Check(entity.DisplayName("name", labelName, in.Name))
	}

	sv, err := checkSubcats(ctx, strings.TrimSpace(in.Value), nil, in.Subcats)
	if err != nil {
		return nil, err
	}
	v.Merge(sv)

	if err := v.Err(); err != nil {
		return nil, err
	}

	subcats := make([]entity.Subcategory, 0, len(in.Subcats))
	for _, sc := range in.Subcats {
		subcats = append(subcats, subcatFromInput(sc, primitive.NilObjectID))
	}
	newID := s.NewID
	if newID == nil {
		newID = embedded.NewID
	}
	return &entity.Category{
		ID:      newID(),
		Value:   strings.TrimSpace(in.Value),
		Name:    in.Name,
		Subcats: embedded.Create(subcats, newID),
	}, nil
}

// Create validates and inserts a new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	category, err := s.PrepareCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// PrepareUpdate validates in against the stored category and returns the
// patch to apply. Value may change as long as it stays unique.
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
	scope := current.Value
	if in.Value != nil {
		if ve := entity.Required("value", labelValue, *in.Value); ve != nil {
			v.Check(ve)
		} else {
			ve, err := s.checkValue(ctx, *in.Value, id)
			if err != nil {
				return nil, err
			}
			v.Check(ve)
			scope = strings.TrimSpace(*in.Value)
		}
	}
	if in.Name != nil {
		v.Check(entity.Required("name", labelName, *in.Name))
		if *in.Name != "" {
			v.Check(entity.DisplayName("name", labelName, *in.Name))
		}
	}
	sv, err := checkSubcats(ctx, scope, current.Subcats, in.Subcats)
	if err != nil {
		return nil, err
	}
	v.Merge(sv)
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := repository.CategoryPatch{Name: in.Name}
	if in.Value != nil {
		value := strings.TrimSpace(*in.Value)
		patch.Value = &value
	}
	if len(in.Subcats) > 0 {
		submitted := make([]entity.Subcategory, 0, len(in.Subcats))
		for _, sc := range in.Subcats {
			sid, _ := parseOptionalID(sc.ID)
			submitted = append(submitted, subcatFromInput(sc, sid))
		}
		merged := embedded.Append(current.Subcats, submitted, s.NewID)
		if added := merged[len(current.Subcats):]; len(added) > 0 {
			patch.AddSubcats = added
		}
	}
	return &Change{ID: id, Patch: patch}, nil
}

// Update validates and applies a partial update, returning the stored result.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Category, error) {
	change, err := s.PrepareUpdate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, change.ID, change.Patch); err != nil {
		return nil, notFound(err, in.ID, "update category")
	}
	return s.load(ctx, change.ID, in.ID)
}

// Delete removes a category and its sub-categories.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := entity.ParseID("_id", rawID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFound(err, rawID, "delete category")
	}
	return nil
}

// AddSubcat validates in against the category's sub-categories and appends it.
func (s *Service) AddSubcat(ctx context.Context, categoryID string, in SubcatInput) (*entity.Subcategory, error) {
	id, err := entity.ParseID("_id", categoryID)
	if err != nil {
		return nil, err
	}
	current, err := s.load(ctx, id, categoryID)
	if err != nil {
		return nil, err
	}

	in.ID = ""
	if err := checkSubcat("subcat", in, current.Value, current.Subcats).Err(); err != nil {
		return nil, err
	}

	subcat, change := embedded.Push(id, subcatFromInput(in, primitive.NilObjectID), s.NewID)
	if err := s.Repo.ApplySubcat(ctx, change); err != nil {
		return nil, notFound(err, categoryID, "add subcat")
	}
	return &subcat, nil
}

// EditSubcat sets the supplied fields on one sub-category.
func (s *Service) EditSubcat(ctx context.Context, categoryID, subcatID string, p SubcatPatch) error {
	id, err := entity.ParseID("_id", categoryID)
	if err != nil {
		return err
	}
	sid, err := entity.ParseID("subcats._id", subcatID)
	if err != nil {
		return err
	}
	current, err := s.load(ctx, id, categoryID)
	if err != nil {
		return err
	}
	if _, ok := current.FindSubcat(sid); !ok {
		return entity.NewNotFound("subcats._id", subcatID, msgSubcatNotFound+" "+current.Value)
	}

	var v entity.Violations
	var fields []embedded.Field
	if p.Value != nil {
		v.Merge(checkSubcatValue("subcat.value", sid, *p.Value, current.Value, current.Subcats))
		fields = append(fields, embedded.Field{Name: "value", Value: strings.TrimSpace(*p.Value)})
	}
	if p.Name != nil {
		v.Check(entity.Required("subcat.name", labelSubcatName, *p.Name))
		if *p.Name != "" {
			v.Check(entity.DisplayName("subcat.name", labelSubcatName, *p.Name))
		}
		fields = append(fields, embedded.Field{Name: "name", Value: *p.Name})
	}
	if err := v.Err(); err != nil {
		return err
	}

	if err := s.Repo.ApplySubcat(ctx, embedded.SetFields(id, sid, fields...)); err != nil {
		return notFound(err, subcatID, "edit subcat")
	}
	return nil
}

// RemoveSubcat pulls one sub-category out of the category.
func (s *Service) RemoveSubcat(ctx context.Context, categoryID, subcatID string) error {
	id, err := entity.ParseID("_id", categoryID)
	if err != nil {
		return err
	}
	sid, err := entity.ParseID("subcats._id", subcatID)
	if err != nil {
		return err
	}
	if err := s.Repo.ApplySubcat(ctx, embedded.Pull(id, sid)); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.NewNotFound("subcats._id", subcatID, msgSubcatNotFound)
		}
		return fmt.Errorf("remove subcat: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID, raw string) (*entity.Category, error) {
	category, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, entity.NewNotFound("_id", raw, msgNotFound)
	}
	return category, nil
}

// checkValue validates the token shape of value and its uniqueness across
// categories, ignoring the category self.
func (s *Service) checkValue(ctx context.Context, value string, self primitive.ObjectID) (*entity.ValidationError, error) {
	trimmed := strings.TrimSpace(value)
	if ve := entity.Token("value", labelValue, trimmed); ve != nil {
		return ve, nil
	}
	found, err := s.Repo.Find(ctx, repository.CategoryFilter{Value: trimmed}, false)
	if err != nil {
		return nil, fmt.Errorf("check category value: %w", err)
	}
	for _, c := range found {
		if c.ID != self && strings.EqualFold(c.Value, trimmed) {
			return &entity.ValidationError{
				Field:   "value",
				Value:   value,
				Message: fmt.Sprintf("%s already exists (id %s), please do update instead", labelValue, c.ID.Hex()),
			}, nil
		}
	}
	return nil, nil
}

func notFound(err error, raw, op string) error {
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NewNotFound("_id", raw, msgNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func checkSubcats(ctx context.Context, scope string, existing []entity.Subcategory, subcats []SubcatInput) (entity.Violations, error) {
	v, err := fanout.Validate(ctx, subcats, func(_ context.Context, i int, sc SubcatInput) (entity.Violations, error) {
		field := fmt.Sprintf("subcats.%d", i)
		out := checkSubcat(field, sc, scope, existing)
		value := strings.TrimSpace(sc.Value)
		for j := 0; j < i && value != ""; j++ {
			if strings.EqualFold(strings.TrimSpace(subcats[j].Value), value) {
				out.AddValue(field+".value", sc.Value, msgSubcatDuplicated)
				break
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("validate subcats: %w", err)
	}
	return v, nil
}

func checkSubcat(field string, sc SubcatInput, scope string, existing []entity.Subcategory) entity.Violations {
	var v entity.Violations

	self, err := parseOptionalID(sc.ID)
	if err != nil {
		v.AddValue(field+"._id", sc.ID, err.Error())
	}
	if stored, ok := findSubcat(existing, self); ok && (stored.Value != strings.TrimSpace(sc.Value) || stored.Name != sc.Name) {
		v.AddValue(field+"._id", sc.ID, msgSubcatEdit)
	}

	v.Check(entity.Required(field+".value", labelSubcatValue, sc.Value))
	if sc.Value != "" {
		v.Merge(checkSubcatValue(field+".value", self, sc.Value, scope, existing))
	}
	v.Check(entity.Required(field+".name", labelSubcatName, sc.Name))
	if sc.Name != "" {
		v.Check(entity.DisplayName(field+".name", labelSubcatName, sc.Name))
	}
	return v
}

func checkSubcatValue(field string, self primitive.ObjectID, value, scope string, existing []entity.Subcategory) entity.Violations {
	var v entity.Violations
	trimmed := strings.TrimSpace(value)
	if ve := entity.Token(field, labelSubcatValue, trimmed); ve != nil {
		v.Check(ve)
		return v
	}
	for _, sc := range existing {
		if !self.IsZero() && sc.ID == self {
			continue
		}
		if strings.EqualFold(sc.Value, trimmed) {
			v.AddValue(field, value, labelSubcatValue+" already exists in Category "+scope)
			break
		}
	}
	return v
}

func findSubcat(subcats []entity.Subcategory, id primitive.ObjectID) (entity.Subcategory, bool) {
	if id.IsZero() {
		return entity.Subcategory{}, false
	}
	for _, sc := range subcats {
		if sc.ID == id {
			return sc, true
		}
	}
	return entity.Subcategory{}, false
}

func subcatFromInput(sc SubcatInput, id primitive.ObjectID) entity.Subcategory {
	return entity.Subcategory{ID: id, Value: strings.TrimSpace(sc.Value), Name: sc.Name}
}

func parseOptionalID(raw string) (primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return primitive.NilObjectID, nil
	}
	return entity.ParseID("_id", raw)
}
