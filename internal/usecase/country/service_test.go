package country_test

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
	countryUC "gowhere/internal/usecase/country"
)

/* ───────── stub ───────── */

type stubRepo struct {
	data      map[primitive.ObjectID]*entity.Country
	err       error
	fragments []embedded.Fragment
	patches   []repository.CountryPatch
}

func newStub(countries ...*entity.Country) *stubRepo {
	s := &stubRepo{data: map[primitive.ObjectID]*entity.Country{}}
	for _, c := range countries {
		s.data[c.ID] = c
	}
	return s
}

func (s *stubRepo) Find(_ context.Context, f repository.CountryFilter, _ bool) ([]*entity.Country, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Country
	for _, c := range s.data {
		if f.Code != "" && !strings.Contains(strings.ToLower(c.Code), strings.ToLower(f.Code)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id primitive.ObjectID) (*entity.Country, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *stubRepo) Create(_ context.Context, c *entity.Country) error {
	if s.err != nil {
		return s.err
	}
	s.data[c.ID] = c
	return nil
}

func (s *stubRepo) Update(_ context.Context, id primitive.ObjectID, p repository.CountryPatch) error {
	if s.err != nil {
		return s.err
	}
	c, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	s.patches = append(s.patches, p)
	if p.Name != nil {
		c.Name = *p.Name
	}
	c.Cities = append(c.Cities, p.AddCities...)
	return nil
}

func (s *stubRepo) ApplyCity(_ context.Context, f embedded.Fragment) error {
	if s.err != nil {
		return s.err
	}
	c, ok := s.data[f.Parent]
	if !ok {
		return entity.ErrNotFound
	}
	s.fragments = append(s.fragments, f)
	switch f.Mode {
	case embedded.ModePush:
		c.Cities = append(c.Cities, f.Item.(entity.City))
	case embedded.ModePull:
		if !embedded.Contains(c.Cities, f.Child) {
			return entity.ErrNotFound
		}
		kept := c.Cities[:0]
		for _, city := range c.Cities {
			if city.ID != f.Child {
				kept = append(kept, city)
			}
		}
		c.Cities = kept
	}
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func japan() *entity.Country {
	return &entity.Country{
		ID:   primitive.NewObjectID(),
		Code: "JP",
		Name: "Japan",
		Cities: []entity.City{
			{ID: primitive.NewObjectID(), Name: "Tokyo"},
		},
	}
}

func violations(t *testing.T, err error) entity.Violations {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, entity.ErrValidationFailed), "expected validation failure, got %v", err)
	var v entity.Violations
	require.True(t, errors.As(err, &v))
	return v
}

func fieldsOf(v entity.Violations) []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Field)
	}
	return out
}

/* ───────── create ───────── */

func TestService_PrepareCreate_CodeFormat(t *testing.T) {
	for _, code := range []string{"J", "JPN", "J1", "  ", " jp", "jp\t"} {
		t.Run(code, func(t *testing.T) {
			svc := &countryUC.Service{Repo: newStub()}
			// every other field is invalid too; code still gets exactly one violation
			_, err := svc.PrepareCreate(context.Background(), countryUC.CreateInput{Code: code, Name: "J@pan"})

			v := violations(t, err)
			var onCode []entity.ValidationError
			for _, e := range v {
				if e.Field == "code" {
					onCode = append(onCode, e)
				}
			}
			require.Len(t, onCode, 1)
			assert.Contains(t, onCode[0].Message, "ISO 3166-1 alpha-2")
		})
	}
}

func TestService_Create_UppercasesCodeAndIdentifiesCities(t *testing.T) {
	repo := newStub()
	svc := &countryUC.Service{Repo: repo}

	got, err := svc.Create(context.Background(), countryUC.CreateInput{
		Code:   "jp",
		Name:   "Japan",
		Cities: []countryUC.CityInput{{Name: "Kyoto", Lat: ptr(35.0), Lng: ptr(135.8)}, {Name: "Osaka"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "JP", got.Code)
	assert.False(t, got.ID.IsZero())
	require.Len(t, got.Cities, 2)
	for _, c := range got.Cities {
		assert.False(t, c.ID.IsZero())
	}
	assert.NotEqual(t, got.Cities[0].ID, got.Cities[1].ID)
	assert.Same(t, got, repo.data[got.ID])
}

func TestService_PrepareCreate_CollectsAllViolations(t *testing.T) {
	repo := newStub(japan())
	svc := &countryUC.Service{Repo: repo}

	_, err := svc.PrepareCreate(context.Background(), countryUC.CreateInput{
		Code: "jp",
		Name: "Nippon!",
		Cities: []countryUC.CityInput{
			{Name: "Kyoto", Lat: ptr(95.0)},
			{Name: ""},
			{Name: "kyoto", Lng: ptr(-200.0)},
		},
	})

	v := violations(t, err)
	assert.Equal(t, []string{
		"code",
		"name",
		"cities.0.lat",
		"cities.1.name",
		"cities.2.lng",
		"cities.2.name",
	}, fieldsOf(v))
	assert.Equal(t, "Country Code already exists, please do update instead", v[0].Message)
}

func TestService_PrepareCreate_RequiresCities(t *testing.T) {
	svc := &countryUC.Service{Repo: newStub()}

	_, err := svc.PrepareCreate(context.Background(), countryUC.CreateInput{Code: "FR", Name: "France"})

	v := violations(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, "cities", v[0].Field)
	assert.Equal(t, "Country needs to have at least one city", v[0].Message)
}

func TestService_PrepareCreate_CodeNotConfusedWithSubstring(t *testing.T) {
	repo := newStub(japan())
	svc := &countryUC.Service{Repo: repo}

	// "J" would be a substring of "JP" but "JA" is not equal to it
	_, err := svc.PrepareCreate(context.Background(), countryUC.CreateInput{
		Code: "ja", Name: "Jamaica", Cities: []countryUC.CityInput{{Name: "Kingston"}},
	})
	require.NoError(t, err)
}

func TestService_Create_StoreErrorPropagates(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("connection refused")
	svc := &countryUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), countryUC.CreateInput{
		Code: "FR", Name: "France", Cities: []countryUC.CityInput{{Name: "Paris"}},
	})

	require.ErrorIs(t, err, repo.err)
	assert.False(t, errors.Is(err, entity.ErrValidationFailed))
}

/* ───────── update ───────── */

func TestService_Update_NameOnly(t *testing.T) {
	jp := japan()
	cities := append([]entity.City(nil), jp.Cities...)
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	got, err := svc.Update(context.Background(), countryUC.UpdateInput{ID: jp.ID.Hex(), Name: ptr("Nippon")})

	require.NoError(t, err)
	assert.Equal(t, "Nippon", got.Name)
	assert.Equal(t, "JP", got.Code)
	assert.Equal(t, cities, got.Cities)
	require.Len(t, repo.patches, 1)
	assert.Nil(t, repo.patches[0].AddCities)
}

func TestService_Update_AppendsCitiesKeepingIdentity(t *testing.T) {
	jp := japan()
	tokyo := jp.Cities[0]
	repo := newStub(jp)
	fresh := primitive.NewObjectID()
	svc := &countryUC.Service{Repo: repo, NewID: func() primitive.ObjectID { return fresh }}

	got, err := svc.Update(context.Background(), countryUC.UpdateInput{
		ID:     jp.ID.Hex(),
		Cities: []countryUC.CityInput{{ID: tokyo.ID.Hex(), Name: "Tokyo"}, {Name: "Kyoto"}},
	})

	require.NoError(t, err)
	require.Len(t, got.Cities, 2)
	assert.Equal(t, tokyo, got.Cities[0])
	assert.Equal(t, fresh, got.Cities[1].ID)
	assert.Equal(t, "Kyoto", got.Cities[1].Name)
}

func TestService_PrepareUpdate_PatchCarriesOnlyNewCities(t *testing.T) {
	jp := japan()
	tokyo := jp.Cities[0]
	fresh := primitive.NewObjectID()
	svc := &countryUC.Service{Repo: newStub(jp), NewID: func() primitive.ObjectID { return fresh }}

	tests := []struct {
		name   string
		cities []countryUC.CityInput
		want   []entity.City
	}{
		{
			name:   "identical resubmission adds nothing",
			cities: []countryUC.CityInput{{ID: tokyo.ID.Hex(), Name: "Tokyo"}},
			want:   nil,
		},
		{
			name:   "stored cities are never sent back",
			cities: []countryUC.CityInput{{ID: tokyo.ID.Hex(), Name: "Tokyo"}, {Name: "Nara", Lat: ptr(34.68)}},
			want:   []entity.City{{ID: fresh, Name: "Nara", Lat: ptr(34.68)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, err := svc.PrepareUpdate(context.Background(), countryUC.UpdateInput{ID: jp.ID.Hex(), Cities: tt.cities})
			require.NoError(t, err)
			assert.Equal(t, tt.want, change.Patch.AddCities)
		})
	}
}

func TestService_Update_KeepsCityAddedAfterRead(t *testing.T) {
	jp := japan()
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	change, err := svc.PrepareUpdate(context.Background(), countryUC.UpdateInput{
		ID:     jp.ID.Hex(),
		Cities: []countryUC.CityInput{{Name: "Kyoto"}},
	})
	require.NoError(t, err)

	// a single city lands between the read and the bulk write
	_, err = svc.AddCity(context.Background(), jp.ID.Hex(), countryUC.CityInput{Name: "Sapporo"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background(), change.ID, change.Patch))
	names := make([]string, 0, len(jp.Cities))
	for _, c := range jp.Cities {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Tokyo", "Sapporo", "Kyoto"}, names)
}

func TestService_Update_ChangedExistingCityRejected(t *testing.T) {
	jp := japan()
	tokyo := jp.Cities[0]
	jp.Cities[0].Lat = ptr(35.68)

	tests := []struct {
		name  string
		city  countryUC.CityInput
		valid bool
	}{
		{name: "renamed", city: countryUC.CityInput{ID: tokyo.ID.Hex(), Name: "Osaka"}},
		{name: "moved", city: countryUC.CityInput{ID: tokyo.ID.Hex(), Name: "Tokyo", Lat: ptr(0.0)}},
		{name: "coordinate added", city: countryUC.CityInput{ID: tokyo.ID.Hex(), Name: "Tokyo", Lng: ptr(139.69)}},
		{name: "unchanged", city: countryUC.CityInput{ID: tokyo.ID.Hex(), Name: "Tokyo", Lat: ptr(35.68)}, valid: true},
		{name: "coordinates omitted", city: countryUC.CityInput{ID: tokyo.ID.Hex(), Name: "Tokyo"}, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStub(jp)
			svc := &countryUC.Service{Repo: repo}

			_, err := svc.Update(context.Background(), countryUC.UpdateInput{
				ID:     jp.ID.Hex(),
				Cities: []countryUC.CityInput{tt.city},
			})

			if tt.valid {
				require.NoError(t, err)
				return
			}
			v := violations(t, err)
			require.Len(t, v, 1)
			assert.Equal(t, "cities.0._id", v[0].Field)
			assert.Contains(t, v[0].Message, "PATCH /countries/{id}/cities/{cityId}")
			assert.Empty(t, repo.patches)
			assert.Equal(t, "Tokyo", jp.Cities[0].Name)
		})
	}
}

func TestService_Update_EmptyCitiesIsNoop(t *testing.T) {
	jp := japan()
	before := append([]entity.City(nil), jp.Cities...)
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	got, err := svc.Update(context.Background(), countryUC.UpdateInput{ID: jp.ID.Hex(), Cities: []countryUC.CityInput{}})

	require.NoError(t, err)
	assert.Equal(t, before, got.Cities)
}

func TestService_Update_DuplicateCityName(t *testing.T) {
	jp := japan()
	svc := &countryUC.Service{Repo: newStub(jp)}

	_, err := svc.Update(context.Background(), countryUC.UpdateInput{
		ID:     jp.ID.Hex(),
		Cities: []countryUC.CityInput{{Name: "TOKYO"}},
	})

	v := violations(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, "City Name already exists in Country JP", v[0].Message)
}

func TestService_Update_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		check func(t *testing.T, err error)
	}{
		{
			name: "malformed id",
			id:   "not-an-id",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, entity.ErrMalformedID)
			},
		},
		{
			name: "missing country",
			id:   primitive.NewObjectID().Hex(),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, entity.ErrNotFound)
				var nf *entity.NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "_id", nf.Violation.Field)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &countryUC.Service{Repo: newStub()}
			_, err := svc.Update(context.Background(), countryUC.UpdateInput{ID: tt.id, Name: ptr("X")})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

/* ───────── single city ───────── */

func TestService_AddCity(t *testing.T) {
	jp := japan()
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	city, err := svc.AddCity(context.Background(), jp.ID.Hex(), countryUC.CityInput{Name: "Sapporo", Lat: ptr(43.06)})

	require.NoError(t, err)
	assert.False(t, city.ID.IsZero())
	require.Len(t, repo.fragments, 1)
	assert.Equal(t, embedded.ModePush, repo.fragments[0].Mode)
	assert.Len(t, jp.Cities, 2)

	_, err = svc.AddCity(context.Background(), jp.ID.Hex(), countryUC.CityInput{Name: "sapporo"})
	v := violations(t, err)
	assert.Equal(t, "city.name", v[0].Field)
}

func TestService_EditCity(t *testing.T) {
	jp := japan()
	jp.Cities = append(jp.Cities, entity.City{ID: primitive.NewObjectID(), Name: "Osaka"})
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}
	tokyo := jp.Cities[0]

	t.Run("sets only supplied fields", func(t *testing.T) {
		err := svc.EditCity(context.Background(), jp.ID.Hex(), tokyo.ID.Hex(), countryUC.CityPatch{Lat: ptr(35.68)})
		require.NoError(t, err)
		f := repo.fragments[len(repo.fragments)-1]
		assert.Equal(t, embedded.ModeSet, f.Mode)
		assert.Equal(t, tokyo.ID, f.Child)
		assert.Equal(t, []embedded.Field{{Name: "lat", Value: 35.68}}, f.Fields)
	})

	t.Run("keeping own name is allowed", func(t *testing.T) {
		err := svc.EditCity(context.Background(), jp.ID.Hex(), tokyo.ID.Hex(), countryUC.CityPatch{Name: ptr("tokyo")})
		require.NoError(t, err)
	})

	t.Run("sibling name rejected", func(t *testing.T) {
		err := svc.EditCity(context.Background(), jp.ID.Hex(), tokyo.ID.Hex(), countryUC.CityPatch{Name: ptr("Osaka")})
		v := violations(t, err)
		assert.Equal(t, "City Name already exists in Country JP", v[0].Message)
	})

	t.Run("unknown city", func(t *testing.T) {
		err := svc.EditCity(context.Background(), jp.ID.Hex(), primitive.NewObjectID().Hex(), countryUC.CityPatch{Name: ptr("Nara")})
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("out of range", func(t *testing.T) {
		err := svc.EditCity(context.Background(), jp.ID.Hex(), tokyo.ID.Hex(), countryUC.CityPatch{Lng: ptr(181.0)})
		v := violations(t, err)
		assert.Equal(t, "city.lng", v[0].Field)
	})
}

func TestService_RemoveCity(t *testing.T) {
	jp := japan()
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	require.NoError(t, svc.RemoveCity(context.Background(), jp.ID.Hex(), jp.Cities[0].ID.Hex()))
	assert.Empty(t, jp.Cities)

	err := svc.RemoveCity(context.Background(), jp.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, entity.ErrNotFound)

	err = svc.RemoveCity(context.Background(), jp.ID.Hex(), "tokyo")
	assert.ErrorIs(t, err, entity.ErrMalformedID)
}

/* ───────── delete / list ───────── */

func TestService_Delete(t *testing.T) {
	jp := japan()
	repo := newStub(jp)
	svc := &countryUC.Service{Repo: repo}

	require.NoError(t, svc.Delete(context.Background(), jp.ID.Hex()))
	assert.Empty(t, repo.data)

	assert.ErrorIs(t, svc.Delete(context.Background(), jp.ID.Hex()), entity.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "123"), entity.ErrMalformedID)
}

func TestService_List_WrapsStoreError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("timeout")
	svc := &countryUC.Service{Repo: repo}

	_, err := svc.List(context.Background(), repository.CountryFilter{}, true)

	require.ErrorIs(t, err, repo.err)
	assert.Contains(t, err.Error(), "list countries")
}
