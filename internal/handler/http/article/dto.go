package article

import artUC "gowhere/internal/usecase/article"

const entityName = "article"

const (
	detailRead    = "Error encountered while reading articles collection."
	detailCreate  = "Error encountered while creating article."
	detailUpdate  = "Error encountered while updating article."
	detailDelete  = "Error encountered while deleting article."
	detailComment = "Error encountered while updating comments of article."
)

type sectionRequest struct {
	SectionName string `json:"sectionName"`
	Content     string `json:"content"`
}

type locationRequest struct {
	CountryID string `json:"countryId"`
	CityID    string `json:"cityId"`
	Address   string `json:"address"`
}

type categoryRequest struct {
	CatID     string   `json:"catId"`
	SubcatIDs []string `json:"subcatIds"`
}

type contributorRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type createRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Details     []sectionRequest    `json:"details"`
	Photos      []string            `json:"photos"`
	Tags        []string            `json:"tags"`
	Location    *locationRequest    `json:"location"`
	Categories  []categoryRequest   `json:"categories"`
	Contributor *contributorRequest `json:"contributor"`
	AllowPublic bool                `json:"allowPublic"`
}

// updateRequest distinguishes absent fields (nil) from fields sent empty.
type updateRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Details     *[]sectionRequest   `json:"details"`
	Photos      *[]string           `json:"photos"`
	Tags        *[]string           `json:"tags"`
	Location    *locationRequest    `json:"location"`
	Categories  *[]categoryRequest  `json:"categories"`
	Contributor *contributorRequest `json:"contributor"`
	AllowPublic *bool               `json:"allowPublic"`
}

type commentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

type ref struct {
	ID string `json:"_id"`
}

func (r createRequest) input() artUC.CreateInput {
	return artUC.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Details:     sections(r.Details),
		Photos:      r.Photos,
		Tags:        r.Tags,
		Location:    r.Location.input(),
		Categories:  categories(r.Categories),
		Contributor: r.Contributor.input(),
		AllowPublic: r.AllowPublic,
	}
}

func (r updateRequest) input(id string) artUC.UpdateInput {
	in := artUC.UpdateInput{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Photos:      r.Photos,
		Tags:        r.Tags,
		Location:    r.Location.input(),
		Contributor: r.Contributor.input(),
		AllowPublic: r.AllowPublic,
	}
	if r.Details != nil {
		s := sections(*r.Details)
		in.Details = &s
	}
	if r.Categories != nil {
		c := categories(*r.Categories)
		in.Categories = &c
	}
	return in
}

func (l *locationRequest) input() *artUC.LocationInput {
	if l == nil {
		return nil
	}
	return &artUC.LocationInput{CountryID: l.CountryID, CityID: l.CityID, Address: l.Address}
}

func (c *contributorRequest) input() *artUC.ContributorInput {
	if c == nil {
		return nil
	}
	return &artUC.ContributorInput{Name: c.Name, DisplayName: c.DisplayName, Email: c.Email}
}

func sections(in []sectionRequest) []artUC.SectionInput {
	if in == nil {
		return nil
	}
	out := make([]artUC.SectionInput, 0, len(in))
	for _, s := range in {
		out = append(out, artUC.SectionInput{SectionName: s.SectionName, Content: s.Content})
	}
	return out
}

func categories(in []categoryRequest) []artUC.CategoryRefInput {
	if in == nil {
		return nil
	}
	out := make([]artUC.CategoryRefInput, 0, len(in))
	for _, c := range in {
		out = append(out, artUC.CategoryRefInput{CatID: c.CatID, SubcatIDs: c.SubcatIDs})
	}
	return out
}
