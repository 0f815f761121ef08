// Package country exposes the country use cases over HTTP.
package country

import (
	"net/http"

	countryUC "gowhere/internal/usecase/country"
)

// Register registers all country and city routes with the given mux.
func Register(mux *http.ServeMux, svc *countryUC.Service) {
	mux.Handle("GET /countries", ListHandler{Svc: svc})
	mux.Handle("GET /countries/cities", ListHandler{Svc: svc, WithCities: true})

	mux.Handle("POST /countries", CreateHandler{svc})
	mux.Handle("PATCH /countries/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /countries/{id}", DeleteHandler{svc})

	mux.Handle("POST /countries/{id}/cities", AddCityHandler{svc})
	mux.Handle("PATCH /countries/{id}/cities/{cityId}", EditCityHandler{svc})
	mux.Handle("DELETE /countries/{id}/cities/{cityId}", RemoveCityHandler{svc})
}
