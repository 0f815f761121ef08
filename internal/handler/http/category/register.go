// Package category exposes the category use cases over HTTP.
package category

import (
	"net/http"

	categoryUC "gowhere/internal/usecase/category"
)

// Register registers all category and sub-category routes with the given mux.
func Register(mux *http.ServeMux, svc *categoryUC.Service) {
	mux.Handle("GET /categories", ListHandler{Svc: svc})
	mux.Handle("GET /categories/subcats", ListHandler{Svc: svc, WithSubcats: true})

	mux.Handle("POST /categories", CreateHandler{svc})
	mux.Handle("PATCH /categories/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /categories/{id}", DeleteHandler{svc})

	mux.Handle("POST /categories/{id}/subcats", AddSubcatHandler{svc})
	mux.Handle("PATCH /categories/{id}/subcats/{subcatId}", EditSubcatHandler{svc})
	mux.Handle("DELETE /categories/{id}/subcats/{subcatId}", RemoveSubcatHandler{svc})
}
