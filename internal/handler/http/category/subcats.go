package category

import (
	"encoding/json"
	"net/http"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/handler/http/respond"
	categoryUC "gowhere/internal/usecase/category"
)

// AddSubcatHandler answers POST /categories/{id}/subcats with the new sub-category.
type AddSubcatHandler struct{ Svc *categoryUC.Service }

func (h AddSubcatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req subcatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	subcat, err := h.Svc.AddSubcat(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePush.String(), detailSubcat)
		return
	}
	respond.One(w, http.StatusCreated, subcat)
}

type EditSubcatHandler struct{ Svc *categoryUC.Service }

func (h EditSubcatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req subcatPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	subcatID := r.PathValue("subcatId")
	err := h.Svc.EditSubcat(r.Context(), r.PathValue("id"), subcatID, categoryUC.SubcatPatch{
		Value: req.Value,
		Name:  req.Name,
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModeSet.String(), detailSubcat)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: subcatID})
}

type RemoveSubcatHandler struct{ Svc *categoryUC.Service }

func (h RemoveSubcatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subcatID := r.PathValue("subcatId")
	if err := h.Svc.RemoveSubcat(r.Context(), r.PathValue("id"), subcatID); err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePull.String(), detailSubcat)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: subcatID})
}
