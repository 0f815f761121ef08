package category

import (
	"encoding/json"
	"net/http"

	"gowhere/internal/handler/http/respond"
	categoryUC "gowhere/internal/usecase/category"
)

type CreateHandler struct{ Svc *categoryUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	category, err := h.Svc.Create(r.Context(), categoryUC.CreateInput{
		Value:   req.Value,
		Name:    req.Name,
		Subcats: subcatInputs(req.Subcats),
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, "create", detailCreate)
		return
	}
	respond.One(w, http.StatusCreated, category)
}

type UpdateHandler struct{ Svc *categoryUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	category, err := h.Svc.Update(r.Context(), categoryUC.UpdateInput{
		ID:      r.PathValue("id"),
		Value:   req.Value,
		Name:    req.Name,
		Subcats: subcatInputs(req.Subcats),
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, "update", detailUpdate)
		return
	}
	respond.One(w, http.StatusOK, category)
}

type DeleteHandler struct{ Svc *categoryUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Rejected(w, r, err, entityName, "delete", detailDelete)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: id})
}
