// Package entity defines the core domain entities and validation logic for the application.
// It contains the travel-guide documents (Country, Category, Article), their embedded
// children, the stateless field validators, and domain-specific errors.
package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Country is a top-level document owning its cities.
// Code is the ISO 3166-1 alpha-2 code, stored upper-cased and unique.
type Country struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code   string             `bson:"code" json:"code"`
	Name   string             `bson:"name" json:"name"`
	Cities []City             `bson:"cities,omitempty" json:"cities,omitempty"`
}

// City is embedded in Country. Its ID is assigned on first insertion and never changes.
type City struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
	Lat  *float64           `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng  *float64           `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Identity returns the embedded identity.
func (c City) Identity() primitive.ObjectID { return c.ID }

// WithIdentity returns a copy of c carrying id.
func (c City) WithIdentity(id primitive.ObjectID) City {
	c.ID = id
	return c
}

// FindCity returns the city with the given identity.
func (c *Country) FindCity(id primitive.ObjectID) (City, bool) {
	for _, city := range c.Cities {
		if city.ID == id {
			return city, true
		}
	}
	return City{}, false
}
