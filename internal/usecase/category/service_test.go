package category_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
	catUC "gowhere/internal/usecase/category"
)

/* ───────── stub ───────── */

type stubRepo struct {
	data      map[primitive.ObjectID]*entity.Category
	err       error
	fragments []embedded.Fragment
}

func newStub(categories ...*entity.Category) *stubRepo {
	s := &stubRepo{data: map[primitive.ObjectID]*entity.Category{}}
	for _, c := range categories {
		s.data[c.ID] = c
	}
	return s
}

func (s *stubRepo) Find(_ context.Context, f repository.CategoryFilter, _ bool) ([]*entity.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Category
	for _, c := range s.data {
		if f.Value != "" && !strings.Contains(strings.ToLower(c.Value), strings.ToLower(f.Value)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id primitive.ObjectID) (*entity.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *stubRepo) Create(_ context.Context, c *entity.Category) error {
	if s.err != nil {
		return s.err
	}
	s.data[c.ID] = c
	return nil
}

func (s *stubRepo) Update(_ context.Context, id primitive.ObjectID, p repository.CategoryPatch) error {
	c, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	c.Subcats = append(c.Subcats, p.AddSubcats...)
	return nil
}

func (s *stubRepo) ApplySubcat(_ context.Context, f embedded.Fragment) error {
	c, ok := s.data[f.Parent]
	if !ok {
		return entity.ErrNotFound
	}
	s.fragments = append(s.fragments, f)
	switch f.Mode {
	case embedded.ModePush:
		c.Subcats = append(c.Subcats, f.Item.(entity.Subcategory))
	case embedded.ModePull, embedded.ModeSet:
		if !embedded.Contains(c.Subcats, f.Child) {
			return entity.ErrNotFound
		}
	}
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func food() *entity.Category {
	return &entity.Category{
		ID:    primitive.NewObjectID(),
		Value: "food",
		Name:  "Food",
		Subcats: []entity.Subcategory{
			{ID: primitive.NewObjectID(), Value: "ramen", Name: "Ramen"},
		},
	}
}

func violations(t *testing.T, err error) entity.Violations {
	t.Helper()
	require.Error(t, err)
	var v entity.Violations
	require.True(t, errors.As(err, &v), "expected violations, got %v", err)
	return v
}

/* ───────── tests ───────── */

func TestService_Create_DuplicateValueCitesFirstIdentity(t *testing.T) {
	repo := newStub()
	svc := &catUC.Service{Repo: repo}

	first, err := svc.Create(context.Background(), catUC.CreateInput{Value: "food", Name: "Food"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), catUC.CreateInput{Value: " FOOD ", Name: "Eating"})

	v := violations(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, "value", v[0].Field)
	assert.Contains(t, v[0].Message, "already exists")
	assert.Contains(t, v[0].Message, first.ID.Hex())
	assert.Len(t, repo.data, 1)
}

func TestService_Create_SubstringIsNotDuplicate(t *testing.T) {
	svc := &catUC.Service{Repo: newStub(food())}

	got, err := svc.Create(context.Background(), catUC.CreateInput{Value: "seafood", Name: "Seafood"})

	require.NoError(t, err)
	assert.Equal(t, "seafood", got.Value)
}

func TestService_PrepareCreate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		in     catUC.CreateInput
		fields []string
	}{
		{
			name:   "missing value and name",
			in:     catUC.CreateInput{},
			fields: []string{"value", "name"},
		},
		{
			name:   "value with spaces",
			in:     catUC.CreateInput{Value: "street food", Name: "Street Food"},
			fields: []string{"value"},
		},
		{
			name: "subcats checked in order",
			in: catUC.CreateInput{Value: "food", Name: "Food", Subcats: []catUC.SubcatInput{
				{Value: "ramen", Name: "Ramen"},
				{Value: "so ba", Name: ""},
				{Value: "Ramen", Name: "Ramen Again"},
			}},
			fields: []string{"subcats.1.value", "subcats.1.name", "subcats.2.value"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &catUC.Service{Repo: newStub()}
			_, err := svc.PrepareCreate(context.Background(), tt.in)

			v := violations(t, err)
			var fields []string
			for _, e := range v {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestService_PrepareCreate_AssignsSubcatIdentities(t *testing.T) {
	svc := &catUC.Service{Repo: newStub()}

	got, err := svc.PrepareCreate(context.Background(), catUC.CreateInput{
		Value: "stay", Name: "Stay",
		Subcats: []catUC.SubcatInput{{Value: "ryokan", Name: "Ryokan"}, {Value: "hostel", Name: "Hostel"}},
	})

	require.NoError(t, err)
	require.Len(t, got.Subcats, 2)
	assert.False(t, got.Subcats[0].ID.IsZero())
	assert.NotEqual(t, got.Subcats[0].ID, got.Subcats[1].ID)
}

func TestService_Update(t *testing.T) {
	t.Run("value may change when unique", func(t *testing.T) {
		cat := food()
		svc := &catUC.Service{Repo: newStub(cat)}

		got, err := svc.Update(context.Background(), catUC.UpdateInput{ID: cat.ID.Hex(), Value: ptr("cuisine")})

		require.NoError(t, err)
		assert.Equal(t, "cuisine", got.Value)
		assert.Equal(t, "Food", got.Name)
	})

	t.Run("re-submitting own value is allowed", func(t *testing.T) {
		cat := food()
		svc := &catUC.Service{Repo: newStub(cat)}

		_, err := svc.Update(context.Background(), catUC.UpdateInput{ID: cat.ID.Hex(), Value: ptr("FOOD")})
		require.NoError(t, err)
	})

	t.Run("value taken by another category", func(t *testing.T) {
		cat, other := food(), food()
		other.Value = "drinks"
		svc := &catUC.Service{Repo: newStub(cat, other)}

		_, err := svc.Update(context.Background(), catUC.UpdateInput{ID: cat.ID.Hex(), Value: ptr("drinks")})

		v := violations(t, err)
		assert.Contains(t, v[0].Message, other.ID.Hex())
	})

	t.Run("subcats appended with scope of category", func(t *testing.T) {
		cat := food()
		ramen := cat.Subcats[0]
		svc := &catUC.Service{Repo: newStub(cat)}

		_, err := svc.Update(context.Background(), catUC.UpdateInput{
			ID:      cat.ID.Hex(),
			Subcats: []catUC.SubcatInput{{Value: "RAMEN", Name: "Ramen"}},
		})
		v := violations(t, err)
		assert.Equal(t, "Sub-types Value already exists in Category food", v[0].Message)

		got, err := svc.Update(context.Background(), catUC.UpdateInput{
			ID:      cat.ID.Hex(),
			Subcats: []catUC.SubcatInput{{ID: ramen.ID.Hex(), Value: "ramen", Name: "Ramen"}, {Value: "sushi", Name: "Sushi"}},
		})
		require.NoError(t, err)
		require.Len(t, got.Subcats, 2)
		assert.Equal(t, ramen, got.Subcats[0])
		assert.Equal(t, "sushi", got.Subcats[1].Value)
	})

	t.Run("missing category", func(t *testing.T) {
		svc := &catUC.Service{Repo: newStub()}
		_, err := svc.Update(context.Background(), catUC.UpdateInput{ID: primitive.NewObjectID().Hex(), Name: ptr("X")})

		var nf *entity.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Category Value does not exists, please do create instead", nf.Violation.Message)
	})
}

func TestService_Update_ChangedExistingSubcat(t *testing.T) {
	tests := []struct {
		name   string
		subcat func(ramen entity.Subcategory) catUC.SubcatInput
		valid  bool
	}{
		{
			name:   "renamed",
			subcat: func(r entity.Subcategory) catUC.SubcatInput { return catUC.SubcatInput{ID: r.ID.Hex(), Value: "ramen", Name: "Noodles"} },
		},
		{
			name:   "new value",
			subcat: func(r entity.Subcategory) catUC.SubcatInput { return catUC.SubcatInput{ID: r.ID.Hex(), Value: "udon", Name: "Ramen"} },
		},
		{
			name:   "unchanged with blanks around the value",
			subcat: func(r entity.Subcategory) catUC.SubcatInput { return catUC.SubcatInput{ID: r.ID.Hex(), Value: " ramen ", Name: "Ramen"} },
			valid:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := food()
			ramen := cat.Subcats[0]
			svc := &catUC.Service{Repo: newStub(cat)}

			change, err := svc.PrepareUpdate(context.Background(), catUC.UpdateInput{
				ID:      cat.ID.Hex(),
				Subcats: []catUC.SubcatInput{tt.subcat(ramen)},
			})

			if tt.valid {
				require.NoError(t, err)
				assert.Nil(t, change.Patch.AddSubcats)
				return
			}
			v := violations(t, err)
			require.Len(t, v, 1)
			assert.Equal(t, "subcats.0._id", v[0].Field)
			assert.Contains(t, v[0].Message, "PATCH /categories/{id}/subcats/{subcatId}")
		})
	}
}

func TestService_PrepareUpdate_PatchCarriesOnlyNewSubcats(t *testing.T) {
	cat := food()
	ramen := cat.Subcats[0]
	fresh := primitive.NewObjectID()
	svc := &catUC.Service{Repo: newStub(cat), NewID: func() primitive.ObjectID { return fresh }}

	change, err := svc.PrepareUpdate(context.Background(), catUC.UpdateInput{
		ID:      cat.ID.Hex(),
		Subcats: []catUC.SubcatInput{{ID: ramen.ID.Hex(), Value: "ramen", Name: "Ramen"}, {Value: "sushi", Name: "Sushi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []entity.Subcategory{{ID: fresh, Value: "sushi", Name: "Sushi"}}, change.Patch.AddSubcats)
}

func TestService_SingleSubcat(t *testing.T) {
	cat := food()
	repo := newStub(cat)
	svc := &catUC.Service{Repo: repo}
	ctx := context.Background()

	sc, err := svc.AddSubcat(ctx, cat.ID.Hex(), catUC.SubcatInput{Value: "sushi", Name: "Sushi"})
	require.NoError(t, err)
	assert.Len(t, cat.Subcats, 2)

	_, err = svc.AddSubcat(ctx, cat.ID.Hex(), catUC.SubcatInput{Value: "Sushi", Name: "Sushi"})
	violations(t, err)

	require.NoError(t, svc.EditSubcat(ctx, cat.ID.Hex(), sc.ID.Hex(), catUC.SubcatPatch{Name: ptr("Nigiri")}))
	last := repo.fragments[len(repo.fragments)-1]
	assert.Equal(t, embedded.ModeSet, last.Mode)
	assert.Equal(t, []embedded.Field{{Name: "name", Value: "Nigiri"}}, last.Fields)

	err = svc.EditSubcat(ctx, cat.ID.Hex(), sc.ID.Hex(), catUC.SubcatPatch{Value: ptr("ramen")})
	violations(t, err)

	require.NoError(t, svc.RemoveSubcat(ctx, cat.ID.Hex(), sc.ID.Hex()))
	assert.ErrorIs(t, svc.RemoveSubcat(ctx, cat.ID.Hex(), primitive.NewObjectID().Hex()), entity.ErrNotFound)
	assert.ErrorIs(t, svc.RemoveSubcat(ctx, "food", sc.ID.Hex()), entity.ErrMalformedID)
}

func TestService_Delete(t *testing.T) {
	cat := food()
	svc := &catUC.Service{Repo: newStub(cat)}

	require.NoError(t, svc.Delete(context.Background(), cat.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(context.Background(), cat.ID.Hex()), entity.ErrNotFound)
}

func TestService_StoreErrorIsNotAViolation(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("no reachable servers")
	svc := &catUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), catUC.CreateInput{Value: "food", Name: "Food"})

	require.ErrorIs(t, err, repo.err)
	assert.False(t, errors.Is(err, entity.ErrValidationFailed))
}
