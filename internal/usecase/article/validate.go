package article

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gowhere/internal/domain/entity"
	"gowhere/internal/usecase/fanout"
)

func checkTitle(v *entity.Violations, title string) {
	v.Check(entity.Required("title", "Title", title))
	if title == "" {
		return
	}
	if ve := entity.NotBlank("title", "Title", title); ve != nil {
		v.Check(ve)
		return
	}
	v.Check(entity.LengthBounds("title", "Title", title, titleMin, titleMax))
	v.Check(entity.DisplayName("title", "Title", title))
}

func checkDescription(v *entity.Violations, description string) {
	v.Check(entity.Required("description", "Description", description))
	if description == "" {
		return
	}
	if ve := entity.NotBlank("description", "Description", description); ve != nil {
		v.Check(ve)
		return
	}
	v.Check(entity.LengthBounds("description", "Description", description, descriptionMin, descriptionMax))
}

func checkPhotos(v *entity.Violations, photos []string) {
	for i, p := range photos {
		v.Check(entity.URL(fmt.Sprintf("photos.%d", i), "Photo", p))
	}
}

func checkTags(v *entity.Violations, tags []string) {
	for i, t := range tags {
		v.Check(entity.Tag(fmt.Sprintf("tags.%d", i), "Tag", t))
	}
}

func checkSections(v *entity.Violations, sections []SectionInput) {
	for i, sec := range sections {
		field := fmt.Sprintf("details.%d", i)
		v.Check(entity.Required(field+".sectionName", "Section Name", sec.SectionName))
		if sec.SectionName != "" {
			v.Check(entity.LengthBounds(field+".sectionName", "Section Name", sec.SectionName, sectionMin, sectionMax))
			v.Check(entity.DisplayName(field+".sectionName", "Section Name", sec.SectionName))
		}
		v.Check(entity.Required(field+".content", "Section Content", sec.Content))
		v.Check(entity.NotBlank(field+".content", "Section Content", sec.Content))
	}
}

func checkContributor(v *entity.Violations, c ContributorInput) {
	checkPerson(v, "contributor.name", "Contributor Name", c.Name)
	checkEmail(v, "contributor.email", "Contributor Email", c.Email)
	if c.DisplayName != "" {
		v.Check(entity.LengthBounds("contributor.displayName", "Contributor Display Name", c.DisplayName, personMin, personMax))
		v.Check(entity.DisplayName("contributor.displayName", "Contributor Display Name", c.DisplayName))
	}
}

// checkPerson applies the rules shared by contributor and commenter names.
func checkPerson(v *entity.Violations, field, label, name string) {
	if ve := entity.Required(field, label, name); ve != nil {
		v.Check(ve)
		return
	}
	v.Check(entity.LengthBounds(field, label, name, personMin, personMax))
	v.Check(entity.DisplayName(field, label, name))
}

func checkEmail(v *entity.Violations, field, label, email string) {
	if ve := entity.Required(field, label, email); ve != nil {
		v.Check(ve)
		return
	}
	v.Check(entity.Email(field, label, email))
}

// resolveLocation checks the address and resolves the country and city the
// location points at. Unresolvable references are violations; only store
// failures are returned as errors.
func (s *Service) resolveLocation(ctx context.Context, in LocationInput) (entity.Location, entity.Violations, error) {
	var v entity.Violations
	var loc entity.Location

	v.Check(entity.Required("location.address", "Address", in.Address))
	if in.Address != "" {
		if ve := entity.NotBlank("location.address", "Address", in.Address); ve != nil {
			v.Check(ve)
		} else {
			v.Check(entity.LengthBounds("location.address", "Address", in.Address, addressMin, 0))
		}
	}
	loc.Address = in.Address

	countryID, ok := parseReference(&v, "location.countryId", "Country", in.CountryID)
	cityID, cityOK := parseReference(&v, "location.cityId", "City", in.CityID)
	loc.CountryID, loc.CityID = countryID, cityID
	if !ok {
		return loc, v, nil
	}

	country, err := s.Countries.Get(ctx, countryID)
	if err != nil {
		return loc, nil, fmt.Errorf("resolve country: %w", err)
	}
	if country == nil {
		v.AddValue("location.countryId", in.CountryID, msgCountryNotFound)
		return loc, v, nil
	}
	if cityOK {
		if _, found := country.FindCity(cityID); !found {
			v.AddValue("location.cityId", in.CityID, msgCityNotFound+" "+country.Code)
		}
	}
	return loc, v, nil
}

// resolveCategories checks every category reference concurrently and reports
// the violations in the order of refs.
func (s *Service) resolveCategories(ctx context.Context, refs []CategoryRefInput) ([]entity.ArticleCategory, entity.Violations, error) {
	if len(refs) == 0 {
		var v entity.Violations
		v.Add("categories", msgCategoriesRequired)
		return []entity.ArticleCategory{}, v, nil
	}

	out := make([]entity.ArticleCategory, len(refs))
	v, err := fanout.Validate(ctx, refs, func(ctx context.Context, i int, ref CategoryRefInput) (entity.Violations, error) {
		var v entity.Violations
		field := fmt.Sprintf("categories.%d", i)

		catID, ok := parseReference(&v, field+".catId", "Category", ref.CatID)
		subcatIDs := make([]primitive.ObjectID, 0, len(ref.SubcatIDs))
		positions := make([]int, 0, len(ref.SubcatIDs))
		for j, raw := range ref.SubcatIDs {
			if id, ok := parseReference(&v, fmt.Sprintf("%s.subcatIds.%d", field, j), "Sub-types", raw); ok {
				subcatIDs = append(subcatIDs, id)
				positions = append(positions, j)
			}
		}
		out[i] = entity.ArticleCategory{CatID: catID, SubcatIDs: subcatIDs}
		if !ok {
			return v, nil
		}

		category, err := s.Categories.Get(ctx, catID)
		if err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		if category == nil {
			v.AddValue(field+".catId", ref.CatID, msgCategoryNotFound)
			return v, nil
		}
		for j, id := range subcatIDs {
			if _, found := category.FindSubcat(id); !found {
				v.AddValue(fmt.Sprintf("%s.subcatIds.%d", field, positions[j]), id.Hex(), msgSubcategoryNotFound+" "+category.Value)
			}
		}
		return v, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, v, nil
}

// parseReference parses an identity held in a payload. A malformed reference
// is reported as a violation alongside the other field checks.
func parseReference(v *entity.Violations, field, label, raw string) (primitive.ObjectID, bool) {
	if raw == "" {
		v.Add(field, label+" is required")
		return primitive.NilObjectID, false
	}
	id, err := entity.ParseID(field, raw)
	if err != nil {
		v.AddValue(field, raw, label+" "+msgMalformedReference)
		return primitive.NilObjectID, false
	}
	return id, true
}
