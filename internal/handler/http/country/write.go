package country

import (
	"encoding/json"
	"net/http"

	"gowhere/internal/handler/http/respond"
	countryUC "gowhere/internal/usecase/country"
)

// CreateHandler answers POST /countries with the stored country.
type CreateHandler struct{ Svc *countryUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	country, err := h.Svc.Create(r.Context(), countryUC.CreateInput{
		Code:   req.Code,
		Name:   req.Name,
		Cities: cityInputs(req.Cities),
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, "create", detailCreate)
		return
	}
	respond.One(w, http.StatusCreated, country)
}

// UpdateHandler answers PATCH /countries/{id}. Submitted cities are merged
// into the existing ones.
type UpdateHandler struct{ Svc *countryUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	country, err := h.Svc.Update(r.Context(), countryUC.UpdateInput{
		ID:     r.PathValue("id"),
		Name:   req.Name,
		Cities: cityInputs(req.Cities),
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, "update", detailUpdate)
		return
	}
	respond.One(w, http.StatusOK, country)
}

// DeleteHandler answers DELETE /countries/{id}.
type DeleteHandler struct{ Svc *countryUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Rejected(w, r, err, entityName, "delete", detailDelete)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: id})
}
