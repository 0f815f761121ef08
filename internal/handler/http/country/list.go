package country

import (
	"net/http"

	"gowhere/internal/handler/http/respond"
	"gowhere/internal/repository"
	countryUC "gowhere/internal/usecase/country"
)

// ListHandler answers GET /countries and, with WithCities, GET /countries/cities.
// Query parameters code, name and city are optional filters.
type ListHandler struct {
	Svc        *countryUC.Service
	WithCities bool
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.CountryFilter{
		Code: q.Get("code"),
		Name: q.Get("name"),
		City: q.Get("city"),
	}

	countries, err := h.Svc.List(r.Context(), f, h.WithCities)
	if err != nil {
		respond.Error(w, r, err, detailRead)
		return
	}
	respond.List(w, countries)
}
