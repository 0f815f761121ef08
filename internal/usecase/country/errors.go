// Package country provides use cases for managing countries and their cities.
// It validates payloads against the store (code uniqueness, city names unique
// within their country), prepares write documents, and merges embedded cities
// without regenerating their identities.
package country

// Violation messages surfaced to API clients.
const (
	msgCodeRequired   = "Country Code is required and must use ISO 3166-1 alpha-2"
	msgCodeFormat     = "Country Code must use ISO 3166-1 alpha-2"
	msgCodeExists     = "Country Code already exists, please do update instead"
	msgCitiesRequired = "Country needs to have at least one city"
	msgNotFound       = "Country does not exist, please do create instead"
	msgCityNotFound   = "City does not exist in Country"
	msgCityDuplicated = "City Name is submitted more than once"
	msgCityEdit       = "City already exists in Country, use PATCH /countries/{id}/cities/{cityId} to change it"
)

const (
	labelName     = "Country Name"
	labelCityName = "City Name"
	labelLat      = "Latitude"
	labelLng      = "Longitude"
)
