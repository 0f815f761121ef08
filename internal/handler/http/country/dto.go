package country

import countryUC "gowhere/internal/usecase/country"

const entityName = "country"

// Store failure details. Driver messages are logged, never returned.
const (
	detailRead   = "Error encountered while reading countries collection."
	detailCreate = "Error encountered while creating country."
	detailUpdate = "Error encountered while updating country."
	detailDelete = "Error encountered while deleting country."
	detailCity   = "Error encountered while updating cities of country."
)

type cityRequest struct {
	ID   string   `json:"_id,omitempty"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

func (c cityRequest) input() countryUC.CityInput {
	return countryUC.CityInput{ID: c.ID, Name: c.Name, Lat: c.Lat, Lng: c.Lng}
}

func cityInputs(in []cityRequest) []countryUC.CityInput {
	if in == nil {
		return nil
	}
	out := make([]countryUC.CityInput, 0, len(in))
	for _, c := range in {
		out = append(out, c.input())
	}
	return out
}

type createRequest struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Cities []cityRequest `json:"cities"`
}

type updateRequest struct {
	Name   *string       `json:"name"`
	Cities []cityRequest `json:"cities"`
}

type cityPatchRequest struct {
	Name *string  `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// ref is the body of a delete or child edit: the identity that was affected.
type ref struct {
	ID string `json:"_id"`
}
