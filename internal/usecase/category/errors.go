// Package category provides use cases for managing categories and their
// sub-categories.
package category

const (
	msgNotFound         = "Category Value does not exists, please do create instead"
	msgSubcatNotFound   = "Sub-types does not exist in Category"
	msgSubcatDuplicated = "Sub-types Value is submitted more than once"
	msgSubcatEdit       = "Sub-types already exists in Category, use PATCH /categories/{id}/subcats/{subcatId} to change it"
)

const (
	labelValue       = "Category Value"
	labelName        = "Category Name"
	labelSubcatValue = "Sub-types Value"
	labelSubcatName  = "Sub-types Name"
)
