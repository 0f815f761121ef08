package category

import (
	"net/http"

	"gowhere/internal/handler/http/respond"
	"gowhere/internal/repository"
	categoryUC "gowhere/internal/usecase/category"
)

// ListHandler answers GET /categories and, with WithSubcats, GET /categories/subcats.
type ListHandler struct {
	Svc         *categoryUC.Service
	WithSubcats bool
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categories, err := h.Svc.List(r.Context(), repository.CategoryFilter{
		Value:  q.Get("value"),
		Name:   q.Get("name"),
		Subcat: q.Get("subcat"),
	}, h.WithSubcats)
	if err != nil {
		respond.Error(w, r, err, detailRead)
		return
	}
	respond.List(w, categories)
}
