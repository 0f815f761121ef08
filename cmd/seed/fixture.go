package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"gowhere/internal/domain/entity"
	"gowhere/internal/repository"
	catUC "gowhere/internal/usecase/category"
	ctyUC "gowhere/internal/usecase/country"
)

// Fixture is the reference data loaded by the seeder.
type Fixture struct {
	Countries  []CountryFixture  `yaml:"countries"`
	Categories []CategoryFixture `yaml:"categories"`
}

type CountryFixture struct {
	Code   string        `yaml:"code"`
	Name   string        `yaml:"name"`
	Cities []CityFixture `yaml:"cities"`
}

type CityFixture struct {
	Name string   `yaml:"name"`
	Lat  *float64 `yaml:"lat"`
	Lng  *float64 `yaml:"lng"`
}

type CategoryFixture struct {
	Value   string          `yaml:"value"`
	Name    string          `yaml:"name"`
	Subcats []SubcatFixture `yaml:"subcats"`
}

type SubcatFixture struct {
	Value string `yaml:"value"`
	Name  string `yaml:"name"`
}

// LoadFixture decodes a YAML fixture. Unknown keys are rejected so that a
// misspelled field does not silently seed empty values.
func LoadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Summary counts the outcome of a seeding run.
type Summary struct {
	Created  int
	Skipped  int
	Rejected int
}

// Seeder creates fixture entries through the services, so every entry passes
// the same validation as an API write.
type Seeder struct {
	Countries  *ctyUC.Service
	Categories *catUC.Service
	Logger     *slog.Logger
}

// Run creates every country, then every category. Entries whose code or
// value already exists are skipped; entries with violations are logged and
// counted as rejected. Store failures abort the run.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary

	for _, c := range f.Countries {
		exists, err := s.countryExists(ctx, c.Code)
		if err != nil {
			return sum, err
		}
		if exists {
			sum.Skipped++
			s.Logger.Info("country already present", slog.String("code", c.Code))
			continue
		}

		created, err := s.Countries.Create(ctx, countryInput(c))
		if s.rejected(err, "country", c.Code) {
			sum.Rejected++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("seed country %s: %w", c.Code, err)
		}
		sum.Created++
		s.Logger.Info("country created",
			slog.String("code", created.Code),
			slog.String("id", created.ID.Hex()),
			slog.Int("cities", len(created.Cities)))
	}

	for _, c := range f.Categories {
		exists, err := s.categoryExists(ctx, c.Value)
		if err != nil {
			return sum, err
		}
		if exists {
			sum.Skipped++
			s.Logger.Info("category already present", slog.String("value", c.Value))
			continue
		}

		created, err := s.Categories.Create(ctx, categoryInput(c))
		if s.rejected(err, "category", c.Value) {
			sum.Rejected++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("seed category %s: %w", c.Value, err)
		}
		sum.Created++
		s.Logger.Info("category created",
			slog.String("value", created.Value),
			slog.String("id", created.ID.Hex()),
			slog.Int("subcats", len(created.Subcats)))
	}

	return sum, nil
}

func (s *Seeder) countryExists(ctx context.Context, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil
	}
	found, err := s.Countries.List(ctx, repository.CountryFilter{Code: code}, false)
	if err != nil {
		return false, err
	}
	for _, c := range found {
		if strings.EqualFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Seeder) categoryExists(ctx context.Context, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	found, err := s.Categories.List(ctx, repository.CategoryFilter{Value: value}, false)
	if err != nil {
		return false, err
	}
	for _, c := range found {
		if strings.EqualFold(c.Value, value) {
			return true, nil
		}
	}
	return false, nil
}

// rejected logs the violations of a failed create and reports whether err was one.
func (s *Seeder) rejected(err error, kind, key string) bool {
	var v entity.Violations
	if !errors.As(err, &v) {
		return false
	}
	for _, ve := range v {
		s.Logger.Warn(kind+" rejected",
			slog.String("key", key),
			slog.String("field", ve.Field),
			slog.String("message", ve.Message))
	}
	return true
}

func countryInput(c CountryFixture) ctyUC.CreateInput {
	in := ctyUC.CreateInput{Code: c.Code, Name: c.Name}
	for _, city := range c.Cities {
		in.Cities = append(in.Cities, ctyUC.CityInput{Name: city.Name, Lat: city.Lat, Lng: city.Lng})
	}
	return in
}

func categoryInput(c CategoryFixture) catUC.CreateInput {
	in := catUC.CreateInput{Value: c.Value, Name: c.Name}
	for _, sc := range c.Subcats {
		in.Subcats = append(in.Subcats, catUC.SubcatInput{Value: sc.Value, Name: sc.Name})
	}
	return in
}
