package country

import (
	"encoding/json"
	"net/http"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/handler/http/respond"
	countryUC "gowhere/internal/usecase/country"
)

// AddCityHandler answers POST /countries/{id}/cities with the new city.
type AddCityHandler struct{ Svc *countryUC.Service }

func (h AddCityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	city, err := h.Svc.AddCity(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePush.String(), detailCity)
		return
	}
	respond.One(w, http.StatusCreated, city)
}

// EditCityHandler answers PATCH /countries/{id}/cities/{cityId}.
type EditCityHandler struct{ Svc *countryUC.Service }

func (h EditCityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req cityPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	cityID := r.PathValue("cityId")
	err := h.Svc.EditCity(r.Context(), r.PathValue("id"), cityID, countryUC.CityPatch{
		Name: req.Name,
		Lat:  req.Lat,
		Lng:  req.Lng,
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModeSet.String(), detailCity)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: cityID})
}

// RemoveCityHandler answers DELETE /countries/{id}/cities/{cityId}.
type RemoveCityHandler struct{ Svc *countryUC.Service }

func (h RemoveCityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cityID := r.PathValue("cityId")
	if err := h.Svc.RemoveCity(r.Context(), r.PathValue("id"), cityID); err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePull.String(), detailCity)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: cityID})
}
