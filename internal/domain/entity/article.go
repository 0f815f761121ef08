package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article represents a travel-guide article.
// Details, Contributors and Comments are embedded and owned by the article.
type Article struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Details      []Section          `bson:"details" json:"details,omitempty"`
	Photos       []string           `bson:"photos" json:"photos,omitempty"`
	Tags         []string           `bson:"tags" json:"tags,omitempty"`
	Location     Location           `bson:"location" json:"location"`
	Categories   []ArticleCategory  `bson:"categories" json:"categories"`
	Contributors []Contributor      `bson:"contributors" json:"contributors,omitempty"`
	Rating       Rating             `bson:"rating" json:"rating"`
	Comments     []Comment          `bson:"comments" json:"comments,omitempty"`
	CreatedDate  time.Time          `bson:"createdDate" json:"createdDate"`
	LastModified time.Time          `bson:"lastModified" json:"lastModified"`
	AllowPublic  bool               `bson:"allowPublic" json:"allowPublic"`
}

// Section is one named block of article content.
type Section struct {
	SectionName string `bson:"sectionName" json:"sectionName"`
	Content     string `bson:"content" json:"content"`
}

// Location references a Country and one of its cities.
type Location struct {
	CountryID primitive.ObjectID `bson:"countryId" json:"countryId"`
	CityID    primitive.ObjectID `bson:"cityId" json:"cityId"`
	Address   string             `bson:"address" json:"address"`
}

// ArticleCategory references a Category and a subset of its sub-categories.
type ArticleCategory struct {
	CatID     primitive.ObjectID   `bson:"catId" json:"catId"`
	SubcatIDs []primitive.ObjectID `bson:"subcatIds" json:"subcatIds"`
}

// Contributor is an author or editor of an article.
type Contributor struct {
	Name        string `bson:"name" json:"name"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Email       string `bson:"email" json:"email"`
	IsAuthor    bool   `bson:"isAuthor" json:"isAuthor"`
	IsLastMod   bool   `bson:"isLastMod" json:"isLastMod"`
}

// Rating aggregates reader ratings.
type Rating struct {
	Avg   float64 `bson:"avg" json:"avg"`
	Count int     `bson:"count" json:"count"`
}

// Comment is a reader comment embedded in an article.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Content     string             `bson:"content" json:"content"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// Identity returns the embedded identity.
func (c Comment) Identity() primitive.ObjectID { return c.ID }

// WithIdentity returns a copy of c carrying id.
func (c Comment) WithIdentity(id primitive.ObjectID) Comment {
	c.ID = id
	return c
}

// HasContributorEmail reports whether email already belongs to a contributor.
func (a *Article) HasContributorEmail(email string) bool {
	for _, c := range a.Contributors {
		if strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

// WithLastModifier returns contributors with c marked as the only last modifier.
// When a contributor with the same email exists it is promoted in place;
// otherwise c is appended. The input slice is not modified.
func WithLastModifier(contributors []Contributor, c Contributor) []Contributor {
	out := make([]Contributor, 0, len(contributors)+1)
	found := false
	for _, existing := range contributors {
		existing.IsLastMod = false
		if strings.EqualFold(existing.Email, c.Email) {
			existing.IsLastMod = true
			found = true
		}
		out = append(out, existing)
	}
	if !found {
		c.IsLastMod = true
		out = append(out, c)
	}
	return out
}
