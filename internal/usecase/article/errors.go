// Package article provides use cases for managing travel-guide articles.
// Every write is validated in full, including the references an article holds
// to countries, cities, categories and sub-categories, before anything is
// persisted.
package article

const (
	msgNotFound            = "Article does not exist"
	msgCommentNotFound     = "Comment does not exist in Article"
	msgContributorRequired = "Contributor is required"
	msgContributorExists   = "Contributor Email already exists in Article"
	msgContributorUnknown  = "Contributor Email does not belong to a contributor of this Article"
	msgLocationRequired    = "Location is required"
	msgCountryNotFound     = "Country does not exist"
	msgCityNotFound        = "City does not exist in Country"
	msgCategoriesRequired  = "Article needs to have at least one category"
	msgCategoryNotFound    = "Category does not exist"
	msgSubcategoryNotFound = "Sub-types does not exist in Category"
	msgMalformedReference  = "is not a valid identity"
)

// Length bounds, in characters.
const (
	titleMin, titleMax             = 10, 100
	descriptionMin, descriptionMax = 10, 200
	personMin, personMax           = 3, 80
	addressMin                     = 5
	sectionMin, sectionMax         = 5, 100
)
