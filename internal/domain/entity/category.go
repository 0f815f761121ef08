package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is a top-level document owning its sub-categories.
// Value is a token unique across all categories.
type Category struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Value   string             `bson:"value" json:"value"`
	Name    string             `bson:"name" json:"name"`
	Subcats []Subcategory      `bson:"subcats,omitempty" json:"subcats,omitempty"`
}

// Subcategory is embedded in Category; Value is unique within its parent.
type Subcategory struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Value string             `bson:"value" json:"value"`
	Name  string             `bson:"name" json:"name"`
}

// Identity returns the embedded identity.
func (s Subcategory) Identity() primitive.ObjectID { return s.ID }

// WithIdentity returns a copy of s carrying id.
func (s Subcategory) WithIdentity(id primitive.ObjectID) Subcategory {
	s.ID = id
	return s
}

// FindSubcat returns the sub-category with the given identity.
func (c *Category) FindSubcat(id primitive.ObjectID) (Subcategory, bool) {
	for _, s := range c.Subcats {
		if s.ID == id {
			return s, true
		}
	}
	return Subcategory{}, false
}
