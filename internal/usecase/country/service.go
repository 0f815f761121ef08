package country

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
	"gowhere/internal/usecase/fanout"
)

// CityInput is a submitted city. ID is empty for a new city.
type CityInput struct {
	ID   string
	Name string
	Lat  *float64
	Lng  *float64
}

// CreateInput represents the input parameters for creating a new country.
type CreateInput struct {
	Code   string
	Name   string
	Cities []CityInput
}

// UpdateInput represents a partial update. Nil fields are not updated and
// supplied cities are appended to the existing ones.
type UpdateInput struct {
	ID     string
	Name   *string
	Cities []CityInput
}

// CityPatch carries the fields of a single city edit.
type CityPatch struct {
	Name *string
	Lat  *float64
	Lng  *float64
}

// Change is a validated partial update ready to be persisted.
type Change struct {
	ID    primitive.ObjectID
	Patch repository.CountryPatch
}

// Service provides country management use cases.
type Service struct {
	Repo  repository.CountryRepository
	NewID embedded.IDFunc
}

// List returns the countries matching f. Cities are included when withCities
// is set, narrowed to the matching city when f.City is supplied.
func (s *Service) List(ctx context.Context, f repository.CountryFilter, withCities bool) ([]*entity.Country, error) {
	countries, err := s.Repo.Find(ctx, f, withCities)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

// PrepareCreate validates in and returns the document to insert.
// All rule violations are returned together as entity.Violations.
func (s *Service) PrepareCreate(ctx context.Context, in CreateInput) (*entity.Country, error) {
	var v entity.Violations

	// the length is checked on the raw value; surrounding blanks are not trimmed
	code := in.Code
	switch {
	case strings.TrimSpace(code) == "":
		v.Add("code", msgCodeRequired)
	case !isAlpha2(code):
		v.AddValue("code", in.Code, msgCodeFormat)
	default:
		exists, err := s.codeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			v.AddValue("code", in.Code, msgCodeExists)
		}
	}

	v.Check(entity.Required("name", labelName, in.Name))
	if in.Name != "" {
		v.Check(entity.DisplayName("name", labelName, in.Name))
	}

	if len(in.Cities) == 0 {
		v.Add("cities", msgCitiesRequired)
	} else {
		cv, err := s.checkCities(ctx, strings.ToUpper(code), nil, in.Cities)
		if err != nil {
			return nil, err
		}
		v.Merge(cv)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	cities := make([]entity.City, 0, len(in.Cities))
	for _, c := range in.Cities {
		cities = append(cities, cityFromInput(c, primitive.NilObjectID))
	}
	return &entity.Country{
		ID:     s.newID()(),
		Code:   strings.ToUpper(code),
		Name:   in.Name,
		Cities: embedded.Create(cities, s.NewID),
	}, nil
}

// Create validates and inserts a new country.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Country, error) {
	country, err := s.PrepareCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, country); err != nil {
		return nil, fmt.Errorf("create country: %w", err)
	}
	return country, nil
}

// PrepareUpdate validates in against the stored country and returns the patch
// to apply. Existing cities keep their identity; new cities get a fresh one.
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
	if in.Name != nil {
		v.Check(entity.DisplayName("name", labelName, *in.Name))
	}
	if in.Cities != nil {
		cv, err := s.checkCities(ctx, current.Code, current.Cities, in.Cities)
		if err != nil {
			return nil, err
		}
		v.Merge(cv)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	patch := repository.CountryPatch{Name: in.Name}
	if len(in.Cities) > 0 {
		submitted := make([]entity.City, 0, len(in.Cities))
		for _, c := range in.Cities {
			// identities were validated by checkCities
			cid, _ := parseOptionalID(c.ID)
			submitted = append(submitted, cityFromInput(c, cid))
		}
		merged := embedded.Append(current.Cities, submitted, s.NewID)
		if added := merged[len(current.Cities):]; len(added) > 0 {
			patch.AddCities = added
		}
	}
	return &Change{ID: id, Patch: patch}, nil
}

// Update validates and applies a partial update, returning the stored result.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Country, error) {
	change, err := s.PrepareUpdate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, change.ID, change.Patch); err != nil {
		return nil, s.notFound(err, in.ID, "update country")
	}
	return s.load(ctx, change.ID, in.ID)
}

// Delete removes a country and every city it owns.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := entity.ParseID("_id", rawID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return s.notFound(err, rawID, "delete country")
	}
	return nil
}

// AddCity validates in against the country's cities and appends it.
func (s *Service) AddCity(ctx context.Context, countryID string, in CityInput) (*entity.City, error) {
	id, err := entity.ParseID("_id", countryID)
	if err != nil {
		return nil, err
	}
	current, err := s.load(ctx, id, countryID)
	if err != nil {
		return nil, err
	}

	in.ID = ""
	v := checkCity("city", in, current.Code, current.Cities)
	if err := v.Err(); err != nil {
		return nil, err
	}

	city, change := embedded.Push(id, cityFromInput(in, primitive.NilObjectID), s.NewID)
	if err := s.Repo.ApplyCity(ctx, change); err != nil {
		return nil, s.notFound(err, countryID, "add city")
	}
	return &city, nil
}

// EditCity sets the supplied fields on one city, leaving the others untouched.
func (s *Service) EditCity(ctx context.Context, countryID, cityID string, p CityPatch) error {
	id, err := entity.ParseID("_id", countryID)
	if err != nil {
		return err
	}
	cid, err := entity.ParseID("cities._id", cityID)
	if err != nil {
		return err
	}
	current, err := s.load(ctx, id, countryID)
	if err != nil {
		return err
	}
	if _, ok := current.FindCity(cid); !ok {
		return entity.NewNotFound("cities._id", cityID, msgCityNotFound+" "+current.Code)
	}

	var v entity.Violations
	var fields []embedded.Field
	if p.Name != nil {
		v.Merge(checkCityName("city.name", cid, *p.Name, current.Code, current.Cities))
		fields = append(fields, embedded.Field{Name: "name", Value: *p.Name})
	}
	if p.Lat != nil {
		v.Check(entity.NumericRange("city.lat", labelLat, *p.Lat, -90, 90))
		fields = append(fields, embedded.Field{Name: "lat", Value: *p.Lat})
	}
	if p.Lng != nil {
		v.Check(entity.NumericRange("city.lng", labelLng, *p.Lng, -180, 180))
		fields = append(fields, embedded.Field{Name: "lng", Value: *p.Lng})
	}
	if err := v.Err(); err != nil {
		return err
	}

	if err := s.Repo.ApplyCity(ctx, embedded.SetFields(id, cid, fields...)); err != nil {
		return s.notFound(err, cityID, "edit city")
	}
	return nil
}

// RemoveCity pulls one city out of the country.
func (s *Service) RemoveCity(ctx context.Context, countryID, cityID string) error {
	id, err := entity.ParseID("_id", countryID)
	if err != nil {
		return err
	}
	cid, err := entity.ParseID("cities._id", cityID)
	if err != nil {
		return err
	}
	if err := s.Repo.ApplyCity(ctx, embedded.Pull(id, cid)); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.NewNotFound("cities._id", cityID, msgCityNotFound)
		}
		return fmt.Errorf("remove city: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id primitive.ObjectID, raw string) (*entity.Country, error) {
	country, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get country: %w", err)
	}
	if country == nil {
		return nil, entity.NewNotFound("_id", raw, msgNotFound)
	}
	return country, nil
}

// codeExists reads back through the criteria builder; the substring match is
// narrowed to case-insensitive equality.
func (s *Service) codeExists(ctx context.Context, code string) (bool, error) {
	found, err := s.Repo.Find(ctx, repository.CountryFilter{Code: code}, false)
	if err != nil {
		return false, fmt.Errorf("check country code: %w", err)
	}
	for _, c := range found {
		if strings.EqualFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) checkCities(ctx context.Context, code string, existing []entity.City, cities []CityInput) (entity.Violations, error) {
	v, err := fanout.Validate(ctx, cities, func(_ context.Context, i int, c CityInput) (entity.Violations, error) {
		field := fmt.Sprintf("cities.%d", i)
		out := checkCity(field, c, code, existing)
		for j := 0; j < i; j++ {
			if strings.EqualFold(strings.TrimSpace(cities[j].Name), strings.TrimSpace(c.Name)) && c.Name != "" {
				out.AddValue(field+".name", c.Name, msgCityDuplicated)
				break
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("validate cities: %w", err)
	}
	return v, nil
}

func (s *Service) notFound(err error, raw, op string) error {
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NewNotFound("_id", raw, msgNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) newID() embedded.IDFunc {
	if s.NewID == nil {
		return embedded.NewID
	}
	return s.NewID
}

// checkCity validates one submitted city. code scopes the uniqueness message and
// existing holds the parent's current cities.
func checkCity(field string, c CityInput, code string, existing []entity.City) entity.Violations {
	var v entity.Violations

	self, err := parseOptionalID(c.ID)
	if err != nil {
		v.AddValue(field+"._id", c.ID, err.Error())
	}
	if stored, ok := findCity(existing, self); ok && !sameCity(stored, c) {
		v.AddValue(field+"._id", c.ID, msgCityEdit)
	}

	v.Check(entity.Required(field+".name", labelCityName, c.Name))
	if c.Name != "" {
		v.Merge(checkCityName(field+".name", self, c.Name, code, existing))
	}
	if c.Lat != nil {
		v.Check(entity.NumericRange(field+".lat", labelLat, *c.Lat, -90, 90))
	}
	if c.Lng != nil {
		v.Check(entity.NumericRange(field+".lng", labelLng, *c.Lng, -180, 180))
	}
	return v
}

func checkCityName(field string, self primitive.ObjectID, name, code string, existing []entity.City) entity.Violations {
	var v entity.Violations
	if ve := entity.DisplayName(field, labelCityName, name); ve != nil {
		v.Check(ve)
		return v
	}
	for _, city := range existing {
		if city.ID == self && !self.IsZero() {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(city.Name), strings.TrimSpace(name)) {
			v.AddValue(field, name, labelCityName+" already exists in Country "+code)
			break
		}
	}
	return v
}

func findCity(cities []entity.City, id primitive.ObjectID) (entity.City, bool) {
	if id.IsZero() {
		return entity.City{}, false
	}
	for _, c := range cities {
		if c.ID == id {
			return c, true
		}
	}
	return entity.City{}, false
}

// sameCity reports whether c resubmits stored unchanged. Omitted coordinates
// leave the stored ones as they are.
func sameCity(stored entity.City, c CityInput) bool {
	if c.Name != stored.Name {
		return false
	}
	return sameCoord(stored.Lat, c.Lat) && sameCoord(stored.Lng, c.Lng)
}

func sameCoord(stored, submitted *float64) bool {
	if submitted == nil {
		return true
	}
	return stored != nil && *stored == *submitted
}

func cityFromInput(c CityInput, id primitive.ObjectID) entity.City {
	return entity.City{ID: id, Name: c.Name, Lat: c.Lat, Lng: c.Lng}
}

func parseOptionalID(raw string) (primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return primitive.NilObjectID, nil
	}
	return entity.ParseID("_id", raw)
}

func isAlpha2(code string) bool {
	if utf8.RuneCountInString(code) != 2 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
